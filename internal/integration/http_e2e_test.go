//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"

	"front_desk/internal/adapters/deskapi"
	server "front_desk/internal/adapters/http_server"
	"front_desk/internal/app"
	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
	mysqlrepo "front_desk/internal/storage/mysql"
)

// ---------- helpers ----------

func startDesk(t *testing.T, p app.Policy) *httptest.Server {
	t.Helper()
	st := memory.New()
	if err := app.Seed(context.Background(), st); err != nil {
		t.Fatalf("seed: %v", err)
	}
	srv := server.New(0)
	srv.MountHandlers(&server.Handlers{Desk: app.NewDesk(app.Options{Store: st, Policy: p})})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path string, in, out any) int {
	t.Helper()
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func room(t *testing.T, ts *httptest.Server, id string) domain.Room {
	t.Helper()
	var r domain.Room
	if code := call(t, ts, http.MethodGet, "/v1/rooms/"+id, nil, &r); code != 200 {
		t.Fatalf("get room %s: %d", id, code)
	}
	return r
}

type checkIn struct {
	domain.GuestInput
	RoomID string `json:"roomId"`
}

// ---------- scenarios ----------

func TestHTTP_CheckInLeavesRoomStatus(t *testing.T) {
	ts := startDesk(t, app.Policy{})

	var g domain.Guest
	code := call(t, ts, http.MethodPost, "/v1/guests", checkIn{domain.GuestInput{Name: "Maria"}, "1"}, &g)
	if code != http.StatusCreated || g.RoomID != "1" {
		t.Fatalf("check-in: %d %+v", code, g)
	}
	if r := room(t, ts, "1"); r.Status != domain.RoomAvailable || r.CurrentGuestID != "" {
		t.Fatalf("room changed under manual workflow: %+v", r)
	}
}

func TestHTTP_CheckInOccupiesRoomWithPolicy(t *testing.T) {
	ts := startDesk(t, app.Policy{LinkGuestOnCheckIn: true, OccupyOnCheckIn: true, RejectDoubleOccupancy: true})

	var g domain.Guest
	if code := call(t, ts, http.MethodPost, "/v1/guests", checkIn{domain.GuestInput{Name: "Maria"}, "1"}, &g); code != http.StatusCreated {
		t.Fatalf("check-in: %d", code)
	}
	if r := room(t, ts, "1"); r.Status != domain.RoomOccupied || r.CurrentGuestID != g.ID {
		t.Fatalf("room not occupied: %+v", r)
	}
	if code := call(t, ts, http.MethodPost, "/v1/guests", checkIn{domain.GuestInput{Name: "Pedro"}, "1"}, nil); code != http.StatusConflict {
		t.Fatalf("expected 409 for double occupancy, got %d", code)
	}
}

func TestHTTP_PurchasesAccrue(t *testing.T) {
	ts := startDesk(t, app.Policy{})

	var p domain.Product
	if code := call(t, ts, http.MethodPost, "/v1/products", map[string]any{"name": "Água", "price": "5.00"}, &p); code != http.StatusCreated {
		t.Fatalf("add product: %d", code)
	}

	for i, want := range []string{"5", "10"} {
		var got domain.Purchase
		if code := call(t, ts, http.MethodPost, "/v1/purchases", map[string]string{"roomId": "2", "productId": p.ID}, &got); code != http.StatusCreated {
			t.Fatalf("purchase %d: %d", i, code)
		}
		if !got.Price.Equal(decimal.NewFromInt(5)) {
			t.Fatalf("unexpected price %s", got.Price)
		}
		if r := room(t, ts, "2"); !r.ExtraCharges.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("expected balance %s, got %s", want, r.ExtraCharges)
		}
	}

	var ps []domain.Purchase
	call(t, ts, http.MethodGet, "/v1/purchases?roomId=2", nil, &ps)
	if len(ps) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(ps))
	}
}

func TestHTTP_UnknownProductChangesNothing(t *testing.T) {
	ts := startDesk(t, app.Policy{})

	if code := call(t, ts, http.MethodPost, "/v1/purchases", map[string]string{"roomId": "2", "productId": "ghost"}, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if r := room(t, ts, "2"); !r.ExtraCharges.IsZero() {
		t.Fatalf("balance changed: %s", r.ExtraCharges)
	}
	var ps []domain.Purchase
	call(t, ts, http.MethodGet, "/v1/purchases", nil, &ps)
	if len(ps) != 0 {
		t.Fatalf("expected no purchases, got %d", len(ps))
	}
}

func TestHTTP_ReservationStaysPending(t *testing.T) {
	ts := startDesk(t, app.Policy{})

	var res domain.Reservation
	in := domain.ReservationInput{GuestName: "Ana", Date: "2024-04-01", RoomID: "4"}
	if code := call(t, ts, http.MethodPost, "/v1/reservations", in, &res); code != http.StatusCreated {
		t.Fatalf("create reservation: %d", code)
	}
	if res.Status != domain.ReservationPending {
		t.Fatalf("expected Pending, got %s", res.Status)
	}

	call(t, ts, http.MethodPut, "/v1/rooms/4/status", map[string]string{"status": "OCCUPIED"}, nil)
	var got domain.Reservation
	call(t, ts, http.MethodGet, "/v1/reservations/"+res.ID, nil, &got)
	if got.Status != domain.ReservationPending {
		t.Fatalf("reservation moved on its own: %s", got.Status)
	}

	if code := call(t, ts, http.MethodPut, "/v1/reservations/"+res.ID+"/status", map[string]string{"status": "Confirmed"}, &got); code != 200 || got.Status != domain.ReservationConfirmed {
		t.Fatalf("confirm: %d %s", code, got.Status)
	}

	var d domain.Dashboard
	call(t, ts, http.MethodGet, "/v1/dashboard", nil, &d)
	if d.OpenReservations != 1 || d.ByStatus[domain.RoomOccupied] != 2 {
		t.Fatalf("unexpected dashboard: %+v", d)
	}
}

// ---------- export to MySQL ----------

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func TestHTTP_EndToEnd_ExportFolios(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=frontdesk",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Skipf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/frontdesk?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))
	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)

	ts := startDesk(t, app.Policy{})
	for _, pid := range []string{"p1", "p3"} {
		if code := call(t, ts, http.MethodPost, "/v1/purchases", map[string]string{"roomId": "2", "productId": pid}, nil); code != http.StatusCreated {
			t.Fatalf("purchase %s: %d", pid, code)
		}
	}

	client, err := deskapi.New(ts.URL, "", 50)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	repo := mysqlrepo.New(db)
	rep, err := app.NewExportService(client, repo, 3).ExportAll(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if rep.Exported != 6 || rep.Failed != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}

	total, err := repo.GetRoomTotal(context.Background(), "2")
	if err != nil {
		t.Fatalf("room total: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("13.50")) {
		t.Fatalf("expected 13.50 exported, got %s", total)
	}
}
