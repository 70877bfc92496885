// Package rest provides verbs that return the decoded payload instead of
// the raw response.
//
//	client, _ := rest.New(httpclient.Config{BaseURL: "https://api.example.com"})
//
//	user, err := rest.Get[User](ctx, client, "/users/123", nil)
//	if user == nil && err == nil {
//	    // 204 or empty body
//	}
//
//	created, err := rest.Post[User](ctx, client, "/users", CreateUser{Name: "Alice"})
//
// A ResponseError hook that recovers with a nil response makes the verb
// return (nil, nil), the same as an absent payload.
package rest
