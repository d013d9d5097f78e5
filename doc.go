// Package lookup is an embedded client for the lookup global search.
//
// It searches people, organizations and groups stored in Redis, Valkey
// or a local SQLite file, ranks the candidates with a substring relevance
// score and merges them into one list.
//
//	client, err := lookup.New(ctx, lookup.WithSQLite("lookup.db"), lookup.WithTenant("acme"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	_, _ = client.Records(lookup.CategoryPerson).Upsert(ctx, &lookup.Person{
//	    ID: "e-1", FirstName: "Jane", LastName: "Doe",
//	})
//
//	results, _ := client.Query("jane").Categories(lookup.CategoryPerson).Limit(5).Do(ctx)
//
// An empty query returns no results. A category whose fetch fails is left
// out of the merged list instead of failing the whole search.
package lookup
