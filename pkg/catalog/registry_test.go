package catalog_test

import (
	"context"
	"testing"

	"github.com/glorpus-work/hymod/pkg/catalog"
	catmocks "github.com/glorpus-work/hymod/pkg/catalog/mocks"
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newClients(ctrl *gomock.Controller) (*catmocks.MockClient, *catmocks.MockClient) {
	cf := catmocks.NewMockClient(ctrl)
	cf.EXPECT().Provider().Return(model.ProviderCurseForge).AnyTimes()
	mt := catmocks.NewMockClient(ctrl)
	mt.EXPECT().Provider().Return(model.ProviderModtale).AnyTimes()
	return cf, mt
}

func TestRegistry_ReconfigureRoutesCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	cf, mt := newClients(ctrl)
	reg := catalog.NewRegistry(cf, mt)

	active, err := reg.Active()
	require.NoError(t, err)
	assert.Equal(t, model.ProviderCurseForge, active.Provider())

	mt.EXPECT().SetCredential("mt-key")
	cf.EXPECT().SetCredential("")
	reg.Reconfigure(model.ProviderModtale, "mt-key")

	active, err = reg.Active()
	require.NoError(t, err)
	assert.Equal(t, model.ProviderModtale, active.Provider())
}

func TestRegistry_UnknownProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	cf, _ := newClients(ctrl)
	reg := catalog.NewRegistry(cf)

	_, err := reg.Client(model.ProviderModtale)
	assert.ErrorIs(t, err, errors.ErrConfig)

	_, err = reg.Fetch(context.Background(), model.ProviderModtale, "https://x")
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestRegistry_LookupAndFetchUseOwningProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	cf, mt := newClients(ctrl)
	reg := catalog.NewRegistry(cf, mt)

	item := model.CatalogItem{ID: "42", Name: "Cool Mod", Provider: model.ProviderCurseForge}
	cf.EXPECT().GetItem(gomock.Any(), "42").Return(item, nil)
	mt.EXPECT().Fetch(gomock.Any(), "https://cdn/x.jar").Return([]byte("jar"), nil)

	got, err := reg.Lookup(context.Background(), model.ProviderCurseForge, "42")
	require.NoError(t, err)
	assert.Equal(t, item, got)

	data, err := reg.Fetch(context.Background(), model.ProviderModtale, "https://cdn/x.jar")
	require.NoError(t, err)
	assert.Equal(t, []byte("jar"), data)
}

func TestParseSort(t *testing.T) {
	s, err := catalog.ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, catalog.SortPopularity, s)

	s, err = catalog.ParseSort("Updated")
	require.NoError(t, err)
	assert.Equal(t, catalog.SortUpdated, s)

	_, err = catalog.ParseSort("random")
	assert.Error(t, err)
}
