// Package searchclient is the search client of the edusources, publinova and
// mbodata platforms. It builds OpenSearch queries from search configuration
// presets and turns engine responses into typed documents.
//
//	client, err := searchclient.New(
//	    searchclient.WithOpenSearch("https://localhost:9200"),
//	    searchclient.WithBasicAuth("admin", password),
//	    searchclient.WithPlatform("publinova"),
//	    searchclient.WithPresets("products", "projects"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	res, err := client.Search(ctx, "wiskunde", &searchclient.SearchOptions{
//	    Filters: []searchclient.Filter{searchclient.NewFilter("technical_type", "video")},
//	    PageSize: 10,
//	})
//
// Index management (CreateIndex, DeleteIndex, Schema) shares the client but
// is independent of the selected presets.
package searchclient
