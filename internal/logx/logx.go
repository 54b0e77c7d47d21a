// Package logx: konstruksi zap logger standar utk semua binary.
package logx

import "go.uber.org/zap"

func New(service string) *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		// zap production config statis; gagal di sini berarti build rusak
		panic(err)
	}
	return log.With(zap.String("service", service))
}
