package internal

import (
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
)

// LogCalls is a middleware that logs every call of the endpoint together with its duration. Failed calls are logged
// as warnings if the client is to blame and as errors otherwise
func LogCalls(name string, fallback *logrus.Entry) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(start time.Time) {
				logger := ctxhelper.LoggerOr(ctx, fallback).WithFields(logrus.Fields{
					log.FldEndpoint: name,
					log.FldDuration: time.Since(start).String(),
				})
				if err == nil {
					logger.Debug("Endpoint called")
					return
				}
				status := http.StatusInternalServerError
				if st, ok := err.(httpStatuser); ok {
					status = st.Status()
				}
				if status < http.StatusInternalServerError {
					logger.WithError(err).Warn("Endpoint call rejected")
				} else {
					logger.WithError(err).Error("Endpoint call failed")
				}
			}(time.Now())
			return next(ctx, request)
		}
	}
}
