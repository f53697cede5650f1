package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	AppKey          ContextKey = "app"
	PoolKey         ContextKey = "pool"
	TxKey           ContextKey = "tx"
	LoggerKey       ContextKey = "logger"
	ParamsKey       ContextKey = "params"
	OrganizationKey ContextKey = "organization"
	SessionKey      ContextKey = "session"
	RequestStart    ContextKey = "requestStart"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
