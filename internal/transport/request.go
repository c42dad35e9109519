package transport

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Request describes one backend call relative to the configured base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Body is sent as JSON. Form takes precedence when both are set.
	Body any
	Form map[string]string
}

func Get(path string) *Request { return &Request{Method: http.MethodGet, Path: path} }

func Post(path string, body any) *Request {
	return &Request{Method: http.MethodPost, Path: path, Body: body}
}

// PostForm sends an application/x-www-form-urlencoded body.
func PostForm(path string, form map[string]string) *Request {
	return &Request{Method: http.MethodPost, Path: path, Form: form}
}

func Put(path string, body any) *Request {
	return &Request{Method: http.MethodPut, Path: path, Body: body}
}

func Delete(path string) *Request { return &Request{Method: http.MethodDelete, Path: path} }

// WithQuery adds query parameters and returns r.
func (r *Request) WithQuery(q url.Values) *Request {
	if r.Query == nil {
		r.Query = url.Values{}
	}
	for k, vs := range q {
		for _, v := range vs {
			r.Query.Add(k, v)
		}
	}
	return r
}

// Payload is the body of a successful response, without status line or headers.
type Payload []byte

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (p Payload) Decode(v any) error {
	if len(p) == 0 {
		return nil
	}
	return json.Unmarshal(p, v)
}
