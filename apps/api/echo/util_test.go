package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-console/apps/api/echo"
	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/dashboard"
	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/navigation"
	"github.com/trezcool/masomo-console/core/session"
	"github.com/trezcool/masomo-console/services/metrics"
	"github.com/trezcool/masomo-console/storage/database/inmem"
	"github.com/trezcool/masomo-console/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type env struct {
	conf    *core.Config
	server  *echoapi.Server
	logger  *testutil.Logger
	healthy error
}

func testConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		Build:     "test",
		SecretKey: "secret",
		Server: core.ServerConfig{
			JWTIssuer:          "Masomo",
			JWTExpirationDelta: 10 * time.Minute,
		},
		Catalog:    core.CatalogConfig{Source: core.CatalogSourceMemory},
		Navigation: core.NavigationConfig{RootPath: "/school", LegacyKeywordClassifier: true},
	}
}

func setup(t *testing.T) *env {
	t.Helper()
	conf := testConfig()

	db, err := inmemdb.Open(
		feature.Feature{
			ID:          "f-staff",
			Key:         "staff_management",
			Name:        "Staff Management",
			Description: "Manage staff records and assignments",
		},
		feature.Feature{ID: "f-att", Key: "attendance", Name: "Attendance", Description: "Record daily attendance"},
	)
	require.NoError(t, err)
	repo := inmemdb.NewFeatureRepository(db)
	require.NoError(t, repo.AssignFeatures(context.Background(), session.Tenant{SchoolID: "s1"}, []string{"staff_management", "attendance"}))

	e := &env{conf: conf, logger: new(testutil.Logger)}
	reg := prometheus.NewRegistry()
	metrics := metricsvc.NewPrometheusMetrics(reg)
	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	features := feature.NewService(repo, conf.Catalog.Source, validate, e.logger, metrics)

	e.server = echoapi.NewServer(&echoapi.Options{
		Conf:       conf,
		Logger:     e.logger,
		Validate:   validate,
		Translator: translator,
		NavigationSvc: navigation.NewService(
			features,
			navigation.NewBuilder(conf.Navigation.RootPath, conf.Navigation.LegacyKeywordClassifier),
			inmemdb.NewStateStore(db),
			e.logger,
			metrics,
		),
		DashboardSvc:   dashboard.NewService(features, dashboard.Resolver{RootPath: conf.Navigation.RootPath}),
		DisableReqLogs: true,
		Requests:       metrics,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		HealthCheck:    func(context.Context) error { return e.healthy },
	})
	return e
}

func (e *env) token(t *testing.T, sess session.Session) string {
	t.Helper()
	token, err := echoapi.GenerateToken(echoapi.NewClaims(sess, e.conf), e.conf)
	if err != nil {
		t.Fatalf("token() failed: %v", err)
	}
	return token
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
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

func runHTTPTests(t *testing.T, server http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func labels(nodes []navigation.NodeView) []string {
	res := make([]string, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, n.Label)
	}
	return res
}
