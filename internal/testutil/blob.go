package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type blobObject struct {
	data        []byte
	contentType string
}

// BlobServer is an in-memory S3 stand-in: PUT stores an object under its
// path, GET serves it back. Presigned query parameters are ignored, which is
// all the uploader round trip needs.
type BlobServer struct {
	srv *httptest.Server

	mu      sync.Mutex
	objects map[string]blobObject
}

func NewBlobServer(t *testing.T) *BlobServer {
	t.Helper()

	bs := &BlobServer{
		objects: make(map[string]blobObject),
	}
	bs.srv = httptest.NewServer(http.HandlerFunc(bs.handle))
	t.Cleanup(bs.srv.Close)

	return bs
}

func (bs *BlobServer) URL() string {
	return bs.srv.URL
}

// ObjectCount reports how many objects have been stored.
func (bs *BlobServer) ObjectCount() int {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return len(bs.objects)
}

func (bs *BlobServer) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		bs.mu.Lock()
		bs.objects[r.URL.Path] = blobObject{
			data:        data,
			contentType: r.Header.Get("Content-Type"),
		}
		bs.mu.Unlock()
		w.Header().Set("ETag", `"test-etag"`)
		w.WriteHeader(http.StatusOK)

	case http.MethodGet:
		bs.mu.Lock()
		obj, ok := bs.objects[r.URL.Path]
		bs.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", obj.contentType)
		w.Write(obj.data)

	case http.MethodHead:
		bs.mu.Lock()
		_, ok := bs.objects[r.URL.Path]
		bs.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
