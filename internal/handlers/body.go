package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/alfagnish/users-api/internal/users"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// readCreateInput reads {name, email} from a JSON or form-encoded body.
func readCreateInput(r *http.Request) (users.CreateInput, error) {
	var in users.CreateInput
	if isForm(r) {
		form, err := postForm(r)
		if err != nil {
			return in, err
		}
		in.Name = form.Get("name")
		in.Email = form.Get("email")
		return in, nil
	}
	err := decodeJSON(r, &in)
	return in, err
}

// readUpdateInput reads optional name and email fields. In a form body a
// key that is present yields a non-nil field, even when its value is empty.
func readUpdateInput(r *http.Request) (users.UpdateInput, error) {
	var in users.UpdateInput
	if isForm(r) {
		form, err := postForm(r)
		if err != nil {
			return in, err
		}
		in.Name = formField(form, "name")
		in.Email = formField(form, "email")
		return in, nil
	}
	err := decodeJSON(r, &in)
	return in, err
}

// decodeJSON decodes exactly one JSON value into v. An empty body leaves v
// untouched; anything but whitespace after the value is an error.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

func postForm(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

func formField(form url.Values, key string) *string {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}
