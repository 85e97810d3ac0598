// Package logging builds the slog loggers used by tabbatch.
//
// Console output uses a compact "LEVEL component: message key=value" layout;
// JSON output suits log shipping. Component loggers and WithContext attach the
// component name, run id, operation and batch index so one search run can be
// followed across packages. WarnWithContext guarantees every warning carries
// event_type, error_hint and impact.
package logging
