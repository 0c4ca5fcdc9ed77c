/*
Package api is the HTTP client the panel and CLI use to talk to a REST
resource collection.

# Contract

Every call sends Content-Type: application/json, merged with the configured
default headers and the caller's headers (caller wins), and returns the
parsed JSON body. Paths follow the collection layout:

	GET    /api/{model}        list
	POST   /api/{model}        create
	PUT    /api/{model}/{id}   update
	DELETE /api/{model}/{id}   delete

# Error Handling

Any non-2xx status is returned as *Error carrying the server's "detail"
message, or a generic message when the body has none. Network failures are
returned wrapped with the method and path.

Each call makes exactly one attempt. There is no retry, no backoff and no
client-side timeout; the caller's context is the only bound.

# Example Usage

	client, err := api.NewClient(api.Options{BaseURL: "http://localhost:8000"})
	if err != nil {
		return err
	}

	records, err := client.List(ctx, "user")
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			fmt.Println(apiErr.Status, apiErr.Detail)
		}
		return err
	}

# Thread Safety

A Client is safe for concurrent use.
*/
package api
