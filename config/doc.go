// Package config loads gofetch configuration with Viper.
//
// Values come from a YAML file, an optional .env file and the process
// environment, in increasing order of precedence. Environment variables are
// matched against nested keys by trying every split of their underscores,
// so HTTP_CLIENT_BASE_URL reaches http_client.base_url.
//
// # Usage
//
//	var file struct {
//	    HTTPClient httpclient.Config `mapstructure:"http_client"`
//	}
//	err := config.LoadConfig("orders", &file, config.WithConfigFile("config.yml"))
package config
