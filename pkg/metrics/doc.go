// Package metrics exports validator outcomes and authentication decisions to
// Prometheus.
//
//	obs := metrics.NewObserver(prometheus.DefaultRegisterer, "authgate")
//	engine := validator.NewEngine(validators, validator.WithObserver(obs))
//	mw := authn.Middleware(repo, engine, authn.WithDecisionObserver(obs))
//
// Exposed series:
//
//	<ns>_validations_total{validator, outcome}
//	<ns>_validation_duration_seconds{validator}
//	<ns>_authentication_decisions_total{result}
package metrics
