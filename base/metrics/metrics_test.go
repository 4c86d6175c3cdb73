package metrics

import (
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statsClientMock struct {
	mock.Mock
}

func (m *statsClientMock) Gauge(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *statsClientMock) Count(name string, value int64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *statsClientMock) Histogram(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *statsClientMock) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func TestMetrics_BumpSum(t *testing.T) {
	client := &statsClientMock{}
	client.On("Count", "metagen.item.generated", int64(3), append(hostTags(), "app:metagen", "backend:fs"), float64(1)).Return(nil).Once()

	m := New("metagen", client, WithTags("app", "metagen"))
	m.BumpSum("item.generated", 3, "backend", "fs")
	client.AssertExpectations(t)
}

func TestMetrics_BumpTime(t *testing.T) {
	client := &statsClientMock{}
	client.On("TimeInMilliseconds", "metagen.generate.time", mock.AnythingOfType("float64"), hostTags(), float64(1)).Return(nil).Once()

	m := New("metagen", client)
	m.BumpTime("generate.time").End()
	client.AssertExpectations(t)
}

func TestHostTags(t *testing.T) {
	req := require.New(t)
	host, err := os.Hostname()
	if err != nil || host == "" {
		req.Empty(hostTags())
		return
	}
	req.Equal([]string{"host:" + host}, hostTags())
	for _, tag := range New("metagen", &LogClient{}).(*Metrics).tags {
		req.NotEqual("host:", tag)
	}
}

type panicClient struct {
	LogClient
}

func (panicClient) Histogram(name string, value float64, tags []string, rate float64) error {
	panic("boom")
}

func TestMetrics_clientPanicIsRecovered(t *testing.T) {
	m := New("metagen", &panicClient{})
	require.NotPanics(t, func() { m.BumpHistogram("attribute.static", 1) })
}

func TestNewClient_withoutHost(t *testing.T) {
	req := require.New(t)
	client, err := NewClient("")
	req.NoError(err)
	req.IsType(&LogClient{}, client)
	req.NoError(client.Count("k", 1, nil, 1))
}
