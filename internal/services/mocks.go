package services

import (
	"context"
	"time"

	"github.com/ha-zyxel/ZyxelMate/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type MockDeviceClient struct {
	mock.Mock
}

func (m *MockDeviceClient) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeviceClient) FetchSnapshot(ctx context.Context) (*models.DeviceSnapshot, error) {
	args := m.Called(ctx)
	if snap := args.Get(0); snap != nil {
		return snap.(*models.DeviceSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeviceClient) Reboot(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeviceClient) SetGuestSSID(ctx context.Context, enabled bool) error {
	args := m.Called(ctx, enabled)
	return args.Error(0)
}

func (m *MockDeviceClient) Host() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDeviceClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockVCSClient struct {
	mock.Mock
}

func (m *MockVCSClient) CreateIssue(ctx context.Context, draft *models.IssueDraft) (*models.Issue, error) {
	args := m.Called(ctx, draft)
	if issue := args.Get(0); issue != nil {
		return issue.(*models.Issue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVCSClient) GetTemplateContent(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockVCSClient) AuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockBugDrafter struct {
	mock.Mock
}

func (m *MockBugDrafter) DraftDescription(ctx context.Context, hint string, snapshot *models.DeviceSnapshot) (*models.DraftResult, error) {
	args := m.Called(ctx, hint, snapshot)
	if res := args.Get(0); res != nil {
		return res.(*models.DraftResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockIntegrationLocator struct {
	mock.Mock
}

func (m *MockIntegrationLocator) Manifest(ctx context.Context) (*models.Manifest, error) {
	args := m.Called(ctx)
	if man := args.Get(0); man != nil {
		return man.(*models.Manifest), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) SaveSnapshot(host string, snap *models.DeviceSnapshot) error {
	args := m.Called(host, snap)
	return args.Error(0)
}

func (m *MockSnapshotStore) LoadSnapshot(host string, maxAge time.Duration) (*models.DeviceSnapshot, error) {
	args := m.Called(host, maxAge)
	if snap := args.Get(0); snap != nil {
		return snap.(*models.DeviceSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) TemplatesDir() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockTemplateService) ListTemplates(ctx context.Context) ([]models.TemplateMetadata, error) {
	args := m.Called(ctx)
	if metas := args.Get(0); metas != nil {
		return metas.([]models.TemplateMetadata), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateService) LoadTemplate(ctx context.Context, filePath string) (*models.IssueTemplate, error) {
	args := m.Called(ctx, filePath)
	if tmpl := args.Get(0); tmpl != nil {
		return tmpl.(*models.IssueTemplate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateService) GetTemplateByName(ctx context.Context, name string) (*models.IssueTemplate, error) {
	args := m.Called(ctx, name)
	if tmpl := args.Get(0); tmpl != nil {
		return tmpl.(*models.IssueTemplate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateService) SelectTemplates(ctx context.Context, patterns []string) ([]string, error) {
	args := m.Called(ctx, patterns)
	if paths := args.Get(0); paths != nil {
		return paths.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateService) InitializeTemplates(ctx context.Context, force bool) ([]string, []string, error) {
	args := m.Called(ctx, force)
	var created, skipped []string
	if c := args.Get(0); c != nil {
		created = c.([]string)
	}
	if s := args.Get(1); s != nil {
		skipped = s.([]string)
	}
	return created, skipped, args.Error(2)
}
