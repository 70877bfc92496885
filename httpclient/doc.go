// Package httpclient provides an interceptable HTTP client façade over resty.
//
// Every verb takes a URL, a params payload and optional overrides, and returns
// the raw response:
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 10 * time.Second,
//	})
//
//	// params go to the query for GET and DELETE
//	resp, err := client.Get(ctx, "/items", map[string]any{"page": 1})
//
//	// and to the body for everything else
//	resp, err = client.Post(ctx, "/items", item, httpclient.Options{
//	    "headers": map[string]string{"X-Test": "1"},
//	})
//
// # Hooks
//
// Config carries four optional hooks. BeforeRequest may replace the outgoing
// descriptor. BeforeResponse may replace the response. RequestError and
// ResponseError may recover a failure by returning a nil error:
//
//	cfg.ResponseError = func(err error, _ *httpclient.Config) (*httpclient.Response, error) {
//	    if httpclient.IsNotFound(err) {
//	        return nil, nil
//	    }
//	    return nil, err
//	}
//
// # Cancellation
//
// Client.Cancel aborts in-flight requests. With CancelScope "request" it
// reaches this client only; with "global" it reaches every global-scope client
// and stays in effect until RenewGlobalCancel. IsCancel tells cancellations
// apart from other failures.
//
// # Installing into a host
//
// Install registers $get, $post, $put, $delete, $fetch and $fetchInstance on a
// Host. See the ginhost subpackage for gin.
//
// Subpackages:
//
//   - rest: generic verbs returning the decoded payload, nil when absent
//   - metrics: Prometheus collector middleware
//   - ginhost: gin Host for Install
package httpclient
