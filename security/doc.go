// Package security builds the TLS settings of a gofetch client.
//
//	tlsCfg := security.TLSConfig{
//	    CAFile:     "/etc/ssl/internal-ca.pem",
//	    MinVersion: "1.3",
//	}
//	cfg, err := tlsCfg.Build()
package security
