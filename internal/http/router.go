package http

import (
	"crypto/rsa"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vbncursed/vkr/wallet-service/internal/config"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

// Deps — зависимости роутера. Pool может быть nil (readyz тогда всегда ready).
type Deps struct {
	Service   *wsvc.Service
	Pool      poolPinger
	PublicKey *rsa.PublicKey
	KeyID     string
	Logger    logrus.FieldLogger
}

func Router(d Deps, cfg config.Config) *echo.Echo {
	log := d.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(requestLogger(log))
	e.Binder = StrictJSONBinder{}
	e.HTTPErrorHandler = DefaultHTTPErrorHandler

	// Swagger UI (включается флагом ENABLE_SWAGGER=true)
	if cfg.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	v1 := e.Group("/api/v1")
	v1.GET("/healthz", Healthz)
	v1.GET("/readyz", Readyz(d.Pool))

	svc := d.Service
	v1.POST("/jwt/fat", MakeFatJWT(svc))
	v1.POST("/jwt/object", MakeObjectJWT(svc))
	v1.POST("/jwt/skinny", MakeSkinnyJWT(svc))
	v1.GET("/issuances/:id", GetIssuance(svc))

	v1.POST("/catalog/classes", RegisterClass(svc))
	v1.PUT("/catalog/classes", UpdateClass(svc))
	v1.POST("/catalog/objects", RegisterObject(svc))
	v1.GET("/catalog/:vertical/:kind/:id", LookupRecord(svc))

	// JWKS
	e.GET("/.well-known/keys", JWKS(d.PublicKey, d.KeyID))

	return e
}

func requestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if err, ok := c.Get(ctxKeyError).(error); ok {
				entry = entry.WithError(err)
			}
			switch {
			case v.Status >= 500:
				entry.Error("request failed")
			case v.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}
