package httpclient

import (
	"context"

	"github.com/kbukum/gofetch/logger"
)

// BeforeRequestHook sees every descriptor before it is sent.
// Returning a nil descriptor keeps the original. A returned error rejects the call
// as is; it is not passed to RequestError.
type BeforeRequestHook func(d *Descriptor, cfg *Config) (*Descriptor, error)

// RequestErrorHook handles errors raised before anything was sent.
// A nil error recovers the call with the returned response, which may be nil.
type RequestErrorHook func(err error, cfg *Config) (*Response, error)

// BeforeResponseHook sees every successful response. Its return value is the final response.
type BeforeResponseHook func(resp *Response, cfg *Config, d *Descriptor) (*Response, error)

// ResponseErrorHook handles transport failures, status errors and cancellations.
// A nil error recovers the call with the returned response, which may be nil.
type ResponseErrorHook func(err error, cfg *Config) (*Response, error)

// interceptor runs the configured hooks around a transport.
type interceptor struct {
	cfg  *Config
	next Transport
	log  *logger.Logger
}

func (c *Client) initIntercept() {
	c.pipeline = &interceptor{
		cfg:  &c.config,
		next: c.transport,
		log:  c.log,
	}
}

func (i *interceptor) send(ctx context.Context, d *Descriptor) (*Response, error) {
	if hook := i.cfg.BeforeRequest; hook != nil {
		next, err := hook(d, i.cfg)
		if err != nil {
			return nil, err
		}
		if next != nil {
			d = next
		}
	}

	if d.Cancel != nil {
		if reason := d.Cancel.Reason(); reason != nil {
			return i.responseFailed(NewCancelError(reason))
		}
	}
	ctx, stop := bind(ctx, d.Cancel)
	defer stop()

	resp, err := i.next.Send(ctx, d)
	if err != nil {
		if IsRequestError(err) {
			return i.requestFailed(err)
		}
		return i.responseFailed(err)
	}

	if hook := i.cfg.BeforeResponse; hook != nil {
		return hook(resp, i.cfg, d)
	}
	return resp, nil
}

func (i *interceptor) requestFailed(err error) (*Response, error) {
	hook := i.cfg.RequestError
	if hook == nil {
		return nil, err
	}
	resp, hookErr := hook(err, i.cfg)
	if hookErr == nil {
		i.log.Debug("request error recovered", logger.Fields(logger.FieldPhase, "request", logger.FieldError, err.Error()))
	}
	return resp, hookErr
}

func (i *interceptor) responseFailed(err error) (*Response, error) {
	hook := i.cfg.ResponseError
	if hook == nil {
		return nil, err
	}
	resp, hookErr := hook(err, i.cfg)
	if hookErr == nil {
		i.log.Debug("response error recovered", logger.Fields(logger.FieldPhase, "response", logger.FieldError, err.Error()))
	}
	return resp, hookErr
}
