package sbp_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"sbp-go/internal/archive"
	"sbp-go/internal/destination"
	"sbp-go/internal/model"
	"sbp-go/internal/sbp"
	"sbp-go/internal/structure"
	"sbp-go/internal/testutil"
)

func sunsetShoot() structure.Config {
	return structure.Config{
		ProjectType:       structure.ProjectPhoto,
		WorkType:          structure.WorkPersonal,
		ProjectName:       "Sunset Shoot",
		ProjectDate:       "2024-03-15",
		IncludeCaptureOne: true,
	}
}

func launchForABC() structure.Config {
	return structure.Config{
		ProjectType: structure.ProjectVideo,
		WorkType:    structure.WorkClient,
		ClientName:  " ABC Corp ",
		ProjectName: "Launch",
		ProjectDate: "2024-01-01",
	}
}

func newService(t *testing.T, dests []sbp.Destination, enc sbp.Encryptor) *sbp.SBPService {
	t.Helper()
	return sbp.NewSBPService(
		testutil.NewTestStore(t),
		dests,
		enc,
		sbp.NewNopLogger(),
		testutil.FixedClock(),
		testutil.NewStubIDGenerator(),
	)
}

func stored(t *testing.T, d *destination.BillyDestination, key string) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := d.Get(key, &buf); err != nil {
		t.Fatalf("Get(%q) from %s error = %v", key, d.Name(), err)
	}
	return buf.Bytes()
}

func TestSBPService_Preview(t *testing.T) {
	svc := newService(t, nil, nil)

	t.Run("valid config", func(t *testing.T) {
		plan, err := svc.Preview(sunsetShoot())
		if err != nil {
			t.Fatalf("Preview() error = %v", err)
		}
		if len(plan.Paths) != 7 {
			t.Errorf("len(Paths) = %d, want 7", len(plan.Paths))
		}
		if plan.Summary.ProjectName != "Sunset Shoot" {
			t.Errorf("Summary.ProjectName = %q", plan.Summary.ProjectName)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := sunsetShoot()
		cfg.ProjectName = ""
		_, err := svc.Preview(cfg)
		if !errors.Is(err, structure.ErrInvalidConfig) {
			t.Fatalf("Preview() error = %v, want ErrInvalidConfig", err)
		}
		var verr *structure.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Preview() error = %T, want *ValidationError", err)
		}
	})
}

func TestSBPService_Package(t *testing.T) {
	ctx := context.Background()

	t.Run("plain zip", func(t *testing.T) {
		svc := newService(t, nil, nil)
		plan, _ := svc.Preview(sunsetShoot())

		pkg, err := svc.Package(ctx, plan)
		if err != nil {
			t.Fatalf("Package() error = %v", err)
		}
		if pkg.Name != "Sunset-Shoot-structure.zip" {
			t.Errorf("Name = %q, want %q", pkg.Name, "Sunset-Shoot-structure.zip")
		}
		if pkg.Sealed {
			t.Error("Sealed = true without an encryptor")
		}

		entries, err := archive.Read(pkg.Data)
		if err != nil {
			t.Fatalf("archive.Read() error = %v", err)
		}
		if !reflect.DeepEqual(entries, plan.ArchiveEntries()) {
			t.Errorf("archive entries differ from plan entries")
		}
		if pkg.Entries != len(entries) {
			t.Errorf("Entries = %d, want %d", pkg.Entries, len(entries))
		}
	})

	t.Run("sealed", func(t *testing.T) {
		enc := testutil.NewTestEncryptor()
		svc := newService(t, nil, enc)
		plan, _ := svc.Preview(sunsetShoot())

		pkg, err := svc.Package(ctx, plan)
		if err != nil {
			t.Fatalf("Package() error = %v", err)
		}
		if !pkg.Sealed {
			t.Error("Sealed = false with an encryptor")
		}
		if !strings.HasSuffix(pkg.Name, ".zip"+enc.Extension()) {
			t.Errorf("Name = %q, want %s suffix", pkg.Name, enc.Extension())
		}

		dc, err := enc.Unlock("")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}
		var plain bytes.Buffer
		if err := dc.Decrypt(bytes.NewReader(pkg.Data), &plain); err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if _, err := archive.Read(plain.Bytes()); err != nil {
			t.Errorf("decrypted data is not a zip: %v", err)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		svc := newService(t, nil, nil)
		plan, _ := svc.Preview(sunsetShoot())
		a, _ := svc.Package(ctx, plan)
		b, _ := svc.Package(ctx, plan)
		if !bytes.Equal(a.Data, b.Data) {
			t.Error("Package() output differs between runs")
		}
	})
}

func TestSBPService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("writes to every destination", func(t *testing.T) {
		a := testutil.NewTestDestination("a")
		b := testutil.NewTestDestination("b")
		svc := newService(t, []sbp.Destination{a, b}, nil)

		pkg := &sbp.Package{Name: "x.zip", Data: []byte("archive")}
		if err := svc.Publish(ctx, pkg); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		for _, d := range []*destination.BillyDestination{a, b} {
			if got := stored(t, d, "x.zip"); string(got) != "archive" {
				t.Errorf("%s holds %q, want %q", d.Name(), got, "archive")
			}
		}
	})

	t.Run("failure names the destination", func(t *testing.T) {
		failing := testutil.NewFailingDestination("nas")
		svc := newService(t, []sbp.Destination{testutil.NewTestDestination("a"), failing}, nil)

		err := svc.Publish(ctx, &sbp.Package{Name: "x.zip", Data: []byte("archive")})
		if !errors.Is(err, testutil.ErrDestinationDown) {
			t.Fatalf("Publish() error = %v, want ErrDestinationDown", err)
		}
		if !strings.Contains(err.Error(), "nas") {
			t.Errorf("Publish() error = %q, want destination name", err)
		}
		if failing.Attempts() != 1 {
			t.Errorf("Attempts() = %d, want 1", failing.Attempts())
		}
	})

	t.Run("no destinations", func(t *testing.T) {
		svc := newService(t, nil, nil)
		err := svc.Publish(ctx, &sbp.Package{Name: "x.zip"})
		if !errors.Is(err, sbp.ErrNoDestinations) {
			t.Errorf("Publish() error = %v, want ErrNoDestinations", err)
		}
	})
}

func TestSBPService_ValidateDestinations(t *testing.T) {
	ctx := context.Background()

	svc := newService(t, []sbp.Destination{testutil.NewTestDestination("a")}, nil)
	if err := svc.ValidateDestinations(ctx); err != nil {
		t.Errorf("ValidateDestinations() error = %v", err)
	}
	if got := svc.Destinations(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Destinations() = %v, want [a]", got)
	}

	svc = newService(t, []sbp.Destination{testutil.NewTestDestination("a"), testutil.NewFailingDestination("b")}, nil)
	if err := svc.ValidateDestinations(ctx); err == nil || !strings.Contains(err.Error(), "destination b") {
		t.Errorf("ValidateDestinations() error = %v, want failure for b", err)
	}
}

func TestSBPService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("personal project", func(t *testing.T) {
		dest := testutil.NewTestDestination("local")
		svc := newService(t, []sbp.Destination{dest}, nil)

		result, err := svc.Create(ctx, sunsetShoot())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if result.ClientAdded {
			t.Error("ClientAdded = true for personal work")
		}
		if !reflect.DeepEqual(result.Destinations, []string{"local"}) {
			t.Errorf("Destinations = %v", result.Destinations)
		}
		stored(t, dest, "Sunset-Shoot-structure.zip")

		clients, _ := svc.ListClients()
		if len(clients) != 0 {
			t.Errorf("ListClients() = %d clients, want 0", len(clients))
		}
	})

	t.Run("client project adds client and records folder", func(t *testing.T) {
		svc := newService(t, []sbp.Destination{testutil.NewTestDestination("local")}, nil)

		result, err := svc.Create(ctx, launchForABC())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if !result.ClientAdded {
			t.Error("ClientAdded = false for a new client")
		}

		client, err := svc.GetClient("ABC Corp")
		if err != nil {
			t.Fatalf("GetClient() error = %v", err)
		}
		if !reflect.DeepEqual(client.Projects, []string{"2024-01-01-Launch"}) {
			t.Errorf("Projects = %v, want [2024-01-01-Launch]", client.Projects)
		}

		again, err := svc.Create(ctx, launchForABC())
		if err != nil {
			t.Fatalf("second Create() error = %v", err)
		}
		if again.ClientAdded {
			t.Error("ClientAdded = true for an existing client")
		}
		client, _ = svc.GetClient("ABC Corp")
		if len(client.Projects) != 1 {
			t.Errorf("Projects = %v, want a single entry", client.Projects)
		}
	})

	t.Run("invalid config publishes nothing", func(t *testing.T) {
		failing := testutil.NewFailingDestination("nas")
		svc := newService(t, []sbp.Destination{failing}, nil)

		cfg := launchForABC()
		cfg.ClientName = ""
		if _, err := svc.Create(ctx, cfg); !errors.Is(err, structure.ErrInvalidConfig) {
			t.Fatalf("Create() error = %v, want ErrInvalidConfig", err)
		}
		if failing.Attempts() != 0 {
			t.Errorf("Attempts() = %d, want 0", failing.Attempts())
		}
	})

	t.Run("publish failure records no project", func(t *testing.T) {
		svc := newService(t, []sbp.Destination{testutil.NewFailingDestination("nas")}, nil)

		if _, err := svc.Create(ctx, launchForABC()); err == nil {
			t.Fatal("Create() error = nil, want publish failure")
		}
		if _, err := svc.GetClient("ABC Corp"); !errors.Is(err, sbp.ErrClientNotFound) {
			t.Errorf("GetClient() error = %v, want ErrClientNotFound", err)
		}
	})
}

// brokenClients fails every client lookup.
type brokenClients struct {
	sbp.ClientStore
}

func (brokenClients) FindClientByName(string) (*model.Client, error) {
	return nil, errors.New("disk I/O error")
}

// warnings records Warn messages.
type warnings struct {
	*sbp.NopLogger
	msgs []string
}

func (w *warnings) Warn(msg string, args ...any) { w.msgs = append(w.msgs, msg) }

func TestSBPService_Create_clientStoreFailure(t *testing.T) {
	dest := testutil.NewTestDestination("local")
	logger := &warnings{NopLogger: sbp.NewNopLogger()}
	svc := sbp.NewSBPService(
		brokenClients{ClientStore: testutil.NewTestStore(t)},
		[]sbp.Destination{dest},
		nil,
		logger,
		testutil.FixedClock(),
		testutil.NewStubIDGenerator(),
	)

	result, err := svc.Create(context.Background(), launchForABC())
	if err != nil {
		t.Fatalf("Create() error = %v, want success after publish", err)
	}
	if result.ClientAdded {
		t.Error("ClientAdded = true although the client store failed")
	}
	stored(t, dest, "Launch-structure.zip")
	if len(logger.msgs) != 1 {
		t.Errorf("warnings = %q, want one", logger.msgs)
	}
}

func TestSBPService_CreateAssets(t *testing.T) {
	dest := testutil.NewTestDestination("local")
	svc := newService(t, []sbp.Destination{dest}, nil)

	result, err := svc.CreateAssets(context.Background())
	if err != nil {
		t.Fatalf("CreateAssets() error = %v", err)
	}
	if result.Package.Name != "Assets-Resources-structure.zip" {
		t.Errorf("Name = %q, want %q", result.Package.Name, "Assets-Resources-structure.zip")
	}

	entries, err := archive.Read(stored(t, dest, result.Package.Name))
	if err != nil {
		t.Fatalf("archive.Read() error = %v", err)
	}
	if len(entries) != len(result.Plan.Paths)+len(result.Plan.Files) {
		t.Errorf("len(entries) = %d, want %d", len(entries), len(result.Plan.Paths)+len(result.Plan.Files))
	}
}
