package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hellolocalo/localo-backend/internal/auth"
	"github.com/hellolocalo/localo-backend/internal/banners"
	"github.com/hellolocalo/localo-backend/internal/categories"
	"github.com/hellolocalo/localo-backend/internal/directory"
	"github.com/hellolocalo/localo-backend/internal/geo"
	"github.com/hellolocalo/localo-backend/internal/orders"
	"github.com/hellolocalo/localo-backend/internal/payments"
	"github.com/hellolocalo/localo-backend/internal/products"
	"github.com/hellolocalo/localo-backend/internal/sysconfig"
	"github.com/hellolocalo/localo-backend/internal/vendors"
	pkgauth "github.com/hellolocalo/localo-backend/pkg/auth"
	"github.com/hellolocalo/localo-backend/pkg/auth/session"
	"github.com/hellolocalo/localo-backend/pkg/config"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/hellolocalo/localo-backend/pkg/logger"
	"github.com/hellolocalo/localo-backend/pkg/pagination"
	"github.com/hellolocalo/localo-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, input auth.LoginInput) (*auth.TokenPair, error) {
	panic("unimplemented")
}

func (stubAuthService) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.TokenPair, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) RegisterUser(ctx context.Context, input auth.RegisterUserInput) (*auth.UserView, error) {
	panic("unimplemented")
}

type stubCategoriesService struct{}

func (stubCategoriesService) Tree(ctx context.Context) (*directory.CategoryTree, error) {
	return directory.NewCategoryTree(), nil
}

func (stubCategoriesService) ListTree(ctx context.Context) ([]categories.CategoryNode, error) {
	return []categories.CategoryNode{}, nil
}

func (stubCategoriesService) Create(ctx context.Context, input categories.CreateCategoryInput) (*categories.CategoryNode, error) {
	panic("unimplemented")
}

func (stubCategoriesService) Update(ctx context.Context, id uuid.UUID, input categories.UpdateCategoryInput) error {
	panic("unimplemented")
}

func (stubCategoriesService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubVendorsService struct{}

func (stubVendorsService) ListPublic(ctx context.Context, filter vendors.ListFilter) ([]vendors.VendorView, error) {
	return []vendors.VendorView{}, nil
}

func (stubVendorsService) GetPublic(ctx context.Context, id uuid.UUID) (*vendors.VendorView, error) {
	panic("unimplemented")
}

func (stubVendorsService) Featured(ctx context.Context) (*vendors.VendorView, error) {
	panic("unimplemented")
}

func (stubVendorsService) Register(ctx context.Context, input vendors.RegisterVendorInput) (*vendors.AdminVendorView, error) {
	panic("unimplemented")
}

func (stubVendorsService) Create(ctx context.Context, input vendors.CreateVendorInput) (*vendors.AdminVendorView, error) {
	panic("unimplemented")
}

func (stubVendorsService) Update(ctx context.Context, id uuid.UUID, input vendors.UpdateVendorInput) error {
	panic("unimplemented")
}

func (stubVendorsService) Approve(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubVendorsService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubVendorsService) ListAll(ctx context.Context) ([]vendors.AdminVendorView, error) {
	return []vendors.AdminVendorView{}, nil
}

type stubProductsService struct{}

func (stubProductsService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]products.ProductView, error) {
	return []products.ProductView{}, nil
}

func (stubProductsService) Replace(ctx context.Context, vendorID uuid.UUID, inputs []products.ProductInput) ([]products.ProductView, error) {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) Create(ctx context.Context, input orders.CreateOrderInput) (*orders.OrderView, error) {
	panic("unimplemented")
}

func (stubOrdersService) Get(ctx context.Context, id uuid.UUID, vendorScope *uuid.UUID) (*orders.OrderView, error) {
	panic("unimplemented")
}

func (stubOrdersService) ListForVendor(ctx context.Context, vendorID uuid.UUID, params pagination.Params, status *enums.OrderStatus) (*orders.OrderList, error) {
	return &orders.OrderList{Orders: []orders.OrderView{}}, nil
}

func (stubOrdersService) Buckets(ctx context.Context, vendorID uuid.UUID) (*orders.OrderBuckets, error) {
	return &orders.OrderBuckets{}, nil
}

func (stubOrdersService) Decide(ctx context.Context, id uuid.UUID, vendorScope *uuid.UUID, next enums.OrderStatus) (*orders.OrderView, error) {
	panic("unimplemented")
}

func (stubOrdersService) SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*orders.OrderView, error) {
	panic("unimplemented")
}

type stubBannersService struct{}

func (stubBannersService) ListActive(ctx context.Context) ([]banners.BannerView, error) {
	return []banners.BannerView{}, nil
}

func (stubBannersService) ListAll(ctx context.Context) ([]banners.BannerView, error) {
	return []banners.BannerView{}, nil
}

func (stubBannersService) Create(ctx context.Context, input banners.CreateBannerInput) (*banners.BannerView, error) {
	panic("unimplemented")
}

func (stubBannersService) Update(ctx context.Context, id uuid.UUID, input banners.UpdateBannerInput) (*banners.BannerView, error) {
	panic("unimplemented")
}

func (stubBannersService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubSysconfigService struct{}

func (stubSysconfigService) Get(ctx context.Context, key string) (*sysconfig.ConfigView, error) {
	panic("unimplemented")
}

func (stubSysconfigService) List(ctx context.Context) ([]sysconfig.ConfigView, error) {
	return []sysconfig.ConfigView{}, nil
}

func (stubSysconfigService) Set(ctx context.Context, input sysconfig.SetConfigInput) (*sysconfig.ConfigView, error) {
	panic("unimplemented")
}

func (stubSysconfigService) Unset(ctx context.Context, key string) error {
	panic("unimplemented")
}

func (stubSysconfigService) PinnedVendorID(ctx context.Context) (string, error) {
	return "", nil
}

type stubGeoService struct{}

func (stubGeoService) Locate(ctx context.Context, address string) (*geo.Coordinates, error) {
	panic("unimplemented")
}

type stubIntelligenceService struct{}

func (stubIntelligenceService) Summarize(ctx context.Context, query string, lat, lng *float64) (string, error) {
	return "", nil
}

type stubPaymentsService struct{}

func (stubPaymentsService) CreateIntent(ctx context.Context, input payments.CreateIntentInput) (*payments.IntentView, error) {
	panic("unimplemented")
}

func (stubPaymentsService) Confirm(ctx context.Context, intentID, otp string) (*payments.IntentView, error) {
	panic("unimplemented")
}

func (stubPaymentsService) GetIntent(ctx context.Context, intentID string) (*payments.IntentView, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubSessionChecker{},
		Services{
			Auth:       stubAuthService{},
			Categories: stubCategoriesService{},
			Vendors:    stubVendorsService{},
			Products:   stubProductsService{},
			Orders:     stubOrdersService{},
			Banners:    stubBannersService{},
			Sysconfig:  stubSysconfigService{},
			Geo:        stubGeoService{},
			AI:         stubIntelligenceService{},
			Payments:   stubPaymentsService{},
		},
		nil,
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	vendorID := uuid.New()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		VendorID: &vendorID,
		Role:     role,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{"/health/live", "/api/v1/categories", "/api/v1/vendors", "/api/v1/banners"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestVendorGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders/buckets", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestVendorGroupRequiresVendorRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	asAdmin := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/products", nil)
	asAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin on vendor group got %d", resp.Code)
	}

	asVendor := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/products", nil)
	asVendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleVendor))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asVendor)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for vendor got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	asVendor := httptest.NewRequest(http.MethodGet, "/api/v1/admin/config", nil)
	asVendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleVendor))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asVendor)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor on admin group got %d", resp.Code)
	}

	asAdmin := httptest.NewRequest(http.MethodGet, "/api/v1/admin/config", nil)
	asAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asAdmin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestVendorOrdersListWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders?limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleVendor))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for vendor orders got %d", resp.Code)
	}
}
