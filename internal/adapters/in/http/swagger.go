package http

import (
	"sync"

	"parceltrack/api"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// embeddedDoc serves api/openapi.json to swag.
type embeddedDoc struct{}

func (embeddedDoc) ReadDoc() string {
	return string(api.OpenAPI)
}

var registerDoc sync.Once

// mountSwagger serves the Swagger UI under /swagger/.
func mountSwagger(e *echo.Echo) {
	registerDoc.Do(func() {
		swag.Register(swag.Name, embeddedDoc{})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
