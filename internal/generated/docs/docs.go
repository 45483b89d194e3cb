// Package docs registers the OpenAPI document with swag so that echo-swagger
// can serve it under /swagger/doc.json.
package docs

import (
	"sync"

	"fulfillment/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         servers.BaseURL,
	Title:            "Fulfillment API",
	Description:      "Back office order fulfillment.",
	InfoInstanceName: swag.Name,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

var registerOnce sync.Once

// Register renders the OpenAPI document and registers it. Only the first call
// has an effect.
func Register() error {
	var err error
	registerOnce.Do(func() {
		var doc []byte
		doc, err = servers.SwaggerJSON()
		if err != nil {
			return
		}
		SwaggerInfo.SwaggerTemplate = string(doc)
		swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	})
	return err
}
