package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/events"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/queue"
	pgRepo "github.com/marcos-nsantos/image-pipeline/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/database"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/server"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/consumer"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/delivery"
	imageUC "github.com/marcos-nsantos/image-pipeline/internal/usecase/image"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/ingest"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/resize"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	testBucket     = "uploads"
	apiBasePath    = "/api/v1"
)

var defaultSizes = []string{"thumb", "medium", "large"}

type TestApp struct {
	Server      *httptest.Server
	Pool        *pgxpool.Pool
	Container   testcontainers.Container
	BaseURL     string
	Storage     *stubObjectStorage
	IngestQueue *memQueue
	Loop        *consumer.Loop
	httpClient  *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	err = database.RunMigrations(ctx, pool, getMigrationsPath())
	require.NoError(t, err)

	logger := zap.NewNop()

	// Repositories
	imageRepo := pgRepo.NewImageRepo(pool)

	// In-memory storage and queues stand in for S3 and SQS
	objectStorage := &stubObjectStorage{objects: map[string][]byte{}}
	processor := storage.NewImageProcessor()
	ingestQueue := newMemQueue("ingest")
	resizeQueue := newMemQueue("resize")
	notifier := events.NewNotifier(nil, logger)

	// Use cases
	intakeSvc := intake.NewService(imageRepo, objectStorage, notifier, intake.Config{
		Bucket:         testBucket,
		DefaultSizes:   defaultSizes,
		MaxUploadBytes: 25 << 20,
		URLExpiry:      15 * time.Minute,
	})
	imageSvc := imageUC.NewService(imageRepo, defaultSizes)
	deliverySvc := delivery.NewService(imageRepo, objectStorage, nil, 5*time.Minute, logger)
	ingestSvc := ingest.NewService(imageRepo, objectStorage, processor, resizeQueue, notifier, defaultSizes, logger)
	resizeSvc := resize.NewService(imageRepo, objectStorage, processor, testBucket, logger)

	loop := consumer.NewLoop(resizeQueue, ingestQueue, ingestSvc, resizeSvc, consumer.Config{
		AckPolicy: consumer.AckOnSuccess,
		Receive:   queue.ReceiveOptions{MaxMessages: 1},
	}, logger)

	router := server.NewRouter(server.RouterConfig{
		UploadHandler:  handler.NewUploadHandler(intakeSvc),
		ImageHandler:   handler.NewImageHandler(imageSvc, deliverySvc),
		AllowedOrigins: []string{"*"},
		Logger:         logger,
		Environment:    "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:      ts,
		Pool:        pool,
		Container:   pgContainer,
		BaseURL:     ts.URL,
		Storage:     objectStorage,
		IngestQueue: ingestQueue,
		Loop:        loop,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) request(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, app.BaseURL+apiBasePath+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil)
}

func (app *TestApp) post(path string, body any) (*http.Response, error) {
	return app.request(http.MethodPost, path, body)
}

// drain runs the consumer until both queues are empty.
func (app *TestApp) drain(t *testing.T) int {
	t.Helper()

	total := 0
	for i := 0; i < 50; i++ {
		n := app.Loop.PollOnce(context.Background())
		if n == 0 {
			return total
		}
		total += n
	}
	t.Fatal("queues did not drain")
	return total
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.NRGBA{R: 255, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type stubObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *stubObjectStorage) Bucket() string { return testBucket }

func (s *stubObjectStorage) PresignUpload(_ context.Context, bucket, key string, _ int64, expiry time.Duration) (*entity.UploadGrant, error) {
	return &entity.UploadGrant{
		URL:       "https://stub-storage.example.com/" + bucket,
		Method:    http.MethodPost,
		Fields:    map[string]string{"key": key},
		ExpiresAt: time.Now().UTC().Add(expiry),
	}, nil
}

func (s *stubObjectStorage) PresignDownload(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://stub-storage.example.com/" + bucket + "/" + key + "?signed=true", nil
}

func (s *stubObjectStorage) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return data, nil
}

func (s *stubObjectStorage) HeadObject(ctx context.Context, bucket, key string) (int64, error) {
	data, err := s.GetObject(ctx, bucket, key)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func (s *stubObjectStorage) PutObject(_ context.Context, bucket, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = data
	return nil
}

type memQueue struct {
	mu      sync.Mutex
	name    string
	seq     int
	pending []queue.Message
}

func newMemQueue(name string) *memQueue {
	return &memQueue{name: name}
}

func (q *memQueue) Name() string { return q.name }

func (q *memQueue) Receive(_ context.Context, opts queue.ReceiveOptions) ([]queue.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := min(opts.MaxMessages, len(q.pending))
	out := q.pending[:n:n]
	q.pending = q.pending[n:]
	return out, nil
}

func (q *memQueue) Delete(context.Context, queue.Message) error { return nil }

func (q *memQueue) Send(_ context.Context, body []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	id := q.name + "-" + strconv.Itoa(q.seq)
	q.pending = append(q.pending, queue.Message{ID: id, Body: body, ReceiptHandle: id})
	return nil
}

func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	return filepath.Join(testDir, "..", "..", "migrations")
}
