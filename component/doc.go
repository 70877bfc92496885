// Package component defines the lifecycle interfaces implemented by
// long-lived gofetch parts such as httpclient.Component.
package component
