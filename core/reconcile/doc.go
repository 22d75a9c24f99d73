// Package reconcile finds, for every day, the photos each peer has that the
// owner does not.
//
// Photos are identified by content (PhotoID), grouped per user and day into a
// Collection, and supplied as a Snapshot by a Provider. The Engine partitions
// each day into the owner's collection and the peers' collections and runs
// ReconcileDay on it.
//
// # Skipping unchanged peers
//
// Every Collection maintains an order-independent Fingerprint. Before paying
// for a set difference, ReconcileDay asks the peer's collection whether
// reconciliation is needed at all: empty peers and peers whose fingerprint
// equals the owner's are skipped. The check is an optimization only; the
// reported set is always peer minus owner.
//
// # Missing owner folders
//
// A day with no folder for the owner is reconciled against an empty owner
// collection, so every peer photo that day is reported as missing.
//
// # Concurrency
//
// Days are independent and are reconciled on a bounded pool of goroutines.
// Each goroutine writes its own slot of the result; no other state is shared.
//
// # Usage Example
//
//	engine := reconcile.NewEngine("My", reconcile.Options{
//	    Reporter: reconcile.LogReporter(log),
//	})
//	result, err := engine.ReconcileAll(ctx, fs.NewProvider(afero.NewOsFs(), "./photo_example", log))
//	for _, day := range result.Days {
//	    for _, peer := range day.Missing.Peers() {
//	        fmt.Println(day.Day, peer, day.Missing[peer].IDs())
//	    }
//	}
package reconcile
