package middlewares

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fileshare-io/fileshare-api/config"
)

// TraceMiddleware opens one server span per request on the globally
// registered tracer provider.
func TraceMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	tracer := otel.Tracer(cfg.Grafana.ServiceName)

	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(),
			c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
