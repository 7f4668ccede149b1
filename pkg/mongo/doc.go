// Package mongo connects to MongoDB and stores authenticators in a collection.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	authenticators, client, err := mongo.NewStoreFromConfig(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
//	engine := validator.Compose(validator.BackingStore(authenticators.Exists))
//
// Store depends on the Collection interface, which *mongo.Collection
// satisfies, so it can be exercised without a server.
package mongo
