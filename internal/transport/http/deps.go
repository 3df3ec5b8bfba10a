package http

import (
	"github.com/chicktrack-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/chicktrack-api/internal/infrastructure/jwt"
	s3infra "github.com/chicktrack-api/internal/infrastructure/s3"
	"github.com/chicktrack-api/internal/infrastructure/sms"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	OTPRepo     *dynamo.OTPRepo
	BatchRepo   *dynamo.BatchRepo
	LogRepo     *dynamo.LogRepo
	ProductRepo *dynamo.ProductRepo
	OrderRepo   *dynamo.OrderRepo
	AlertRepo   *dynamo.AlertRepo
	FileRepo    *dynamo.FileRepo
	S3Store     *s3infra.Store
	SMSGateway  sms.Gateway
	JWTProvider *jwtinfra.Provider
}
