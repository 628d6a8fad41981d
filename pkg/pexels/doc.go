// Package pexels is a client for the Pexels keyword photo search API.
//
// A search pages through results until the client's limit is reached or
// the API runs out of photos. Every returned photo carries an
// "original_query" field with the query that found it.
//
// Usage:
//
//	client, err := pexels.NewClient(apiKey, pexels.WithLimit(80))
//	if err != nil {
//	    return err
//	}
//	photos, err := client.Search("mountains")
//	if err != nil {
//	    return err // invalid input only
//	}
//	for _, p := range photos {
//	    fmt.Println(p.Photographer(), p.Src("original"))
//	}
//
// Network failures are retried a fixed number of times with a fixed pause.
// When they persist, or a response cannot be parsed, Search returns the
// photos gathered so far instead of an error. The quota headers of the last
// response are available from RateLimits.
package pexels
