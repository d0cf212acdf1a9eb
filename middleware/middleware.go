package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// Middleware bundles the HTTP middleware shared by the auction and system
// handlers.
type Middleware struct {
	corsConfig domain.CORSConfig
}

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doppler_requests_total",
			Help: "Total number of requests.",
		},
		[]string{"method", "endpoint"},
	)

	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "doppler_request_duration_seconds",
			Help:    "Histogram of request latencies.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestLatency)
}

// InitMiddleware builds the middleware stack from the CORS config.
func InitMiddleware(corsConfig *domain.CORSConfig) *Middleware {
	return &Middleware{
		corsConfig: *corsConfig,
	}
}

// CORS sets the configured CORS headers on every response.
func (m *Middleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		header.Set("Access-Control-Allow-Origin", m.corsConfig.AllowedOrigin)
		header.Set("Access-Control-Allow-Headers", m.corsConfig.AllowedHeaders)
		header.Set("Access-Control-Allow-Methods", m.corsConfig.AllowedMethods)
		return next(c)
	}
}

// InstrumentMiddleware counts and times requests per method and route, and
// stores the route pattern in the request context so downstream code can
// label its own metrics with it.
func (m *Middleware) InstrumentMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestMethod := c.Request().Method
		requestPath, err := domain.ParseURLPath(c)
		if err != nil {
			return err
		}

		requestsTotal.WithLabelValues(requestMethod, requestPath).Inc()

		ctx := context.WithValue(c.Request().Context(), domain.RequestPathCtxKey, requestPath)
		c.SetRequest(c.Request().WithContext(ctx))

		start := time.Now()
		defer func() {
			requestLatency.WithLabelValues(requestMethod, requestPath).Observe(time.Since(start).Seconds())
		}()

		return next(c)
	}
}

// TraceWithParamsMiddleware opens a server span per request, joining any
// trace context propagated in the request headers, and records the method
// plus every path and query parameter as span attributes.
func (m *Middleware) TraceWithParamsMiddleware(tracerName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tracer := otel.Tracer(tracerName)

			parentCtx := otel.GetTextMapPropagator().Extract(c.Request().Context(), propagation.HeaderCarrier(c.Request().Header))

			ctx, span := tracer.Start(parentCtx, c.Path(), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(attribute.String("http.method", c.Request().Method))
			for _, name := range c.ParamNames() {
				span.SetAttributes(attribute.String(name, c.Param(name)))
			}
			for key, values := range c.QueryParams() {
				if len(values) > 0 {
					span.SetAttributes(attribute.String(key, values[0]))
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
