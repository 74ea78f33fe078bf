package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
)

// PrometheusMiddleware records the duration and outcome of every mediator request
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(commandName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

// commandName strips pointer and package prefixes:
// "*commands.CalculatePricesCommand" becomes "CalculatePricesCommand"
func commandName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
