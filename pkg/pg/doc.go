// Package pg connects to PostgreSQL with pgx/v5 and stores authenticators in
// a table.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	authenticators := pg.NewStoreFromConfig(pool, cfg)
//	exists := store.Cached(authenticators.Exists, 10_000, 30*time.Second)
//	engine := validator.Compose(validator.BackingStore(exists))
//
// Store accepts any Querier, so it also works inside a pgx.Tx. Schema
// management is left to the application; see Store for the expected columns.
//
// Error helpers such as IsDuplicateKeyError classify *pgconn.PgError values.
package pg
