// Package envskema validates and coerces environment variables against
// declared schemas.
//
// - Raw strings are coerced by schema kind ("8080" -> 8080, "yes" -> true,
//   JSON for objects and arrays) before the schema validates them
// - Defaults come from the schema itself (schema.Default) or from
//   mode-keyed defaults on a Detailed entry
// - Every variable is evaluated; failures are pooled into one report
//
// Design policy:
// - The schema engine lives in schema/; this package only inspects schemas
//   through schema.Shape.
// - Reading .env files and the process environment is left to callers
//   (see cmd/envskema).
// - Parse is pure: the same input, schema set and mode give the same result.
//
// Typical usage:
//
//  env, err := envskema.Parse(ctx, environ, envskema.SchemaSet{
//      "HOST": envskema.Simple(schema.String()),
//      "PORT": envskema.Simple(schema.Default(envskema.Port(), 8080)),
//      "DB_URL": envskema.Detailed(envskema.URL(),
//          envskema.Description("Postgres connection string"),
//          envskema.WithDefaults(map[string]any{
//              "development": "postgres://localhost/app",
//          })),
//  })
//  if err != nil {
//      log.Fatal(err) // err.Error() is the full report
//  }
//  port := env.Int("PORT")
//
// Mode:
//
//  The variable APP_ENV (see WithModeVar) selects the mode. Detailed
//  defaults are looked up by the exact mode name first, then by Wildcard.
package envskema
