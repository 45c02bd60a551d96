package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	. "github.com/trezcool/schooladmin/apps/api/echo"
	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/school"
	"github.com/trezcool/schooladmin/core/user"
	inmemdb "github.com/trezcool/schooladmin/storage/database/inmem"
)

var users *user.Directory

func TestMain(m *testing.M) {
	var err error
	// hashing the seeded passwords is slow: share one directory
	if users, err = user.NewSeededDirectory(); err != nil {
		panic(err)
	}
	m.Run()
}

type testApp struct {
	*Server
	repo school.Repository
	reg  *prometheus.Registry
}

// setup returns a server over a fresh in-memory database holding the sample records.
func setup(t *testing.T) testApp {
	repo := inmemdb.NewRecordRepository(inmemdb.Open())
	val := school.NewValidator()
	if err := school.NewServices(repo, val).SeedSamples(context.Background()); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	reg := prometheus.NewRegistry()
	conf := &core.Config{TestMode: true, Server: core.ServerConfig{DisableReqLogs: true}}
	srv := NewServer(ServerDeps{Conf: conf, Repo: repo, Validator: val, Users: users, Registry: reg})
	return testApp{Server: srv, repo: repo, reg: reg}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (app testApp) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.ServeHTTP(rec, req)
	return rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
