package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo keeps pantries in memory, preserving insertion order per user.
type fakeRepo struct {
	users   map[uuid.UUID]bool
	items   map[uuid.UUID][]FoodItem
	nowSeed time.Time
}

func newFakeRepo(userIDs ...uuid.UUID) *fakeRepo {
	f := &fakeRepo{
		users:   make(map[uuid.UUID]bool),
		items:   make(map[uuid.UUID][]FoodItem),
		nowSeed: time.Now(),
	}
	for _, id := range userIDs {
		f.users[id] = true
	}
	return f
}

func (f *fakeRepo) UserExists(_ context.Context, userID uuid.UUID) (bool, error) {
	return f.users[userID], nil
}

func (f *fakeRepo) List(_ context.Context, userID uuid.UUID) ([]FoodItem, error) {
	return append([]FoodItem(nil), f.items[userID]...), nil
}

func (f *fakeRepo) GetByID(_ context.Context, userID, itemID uuid.UUID) (*FoodItem, error) {
	for _, item := range f.items[userID] {
		if item.ID == itemID {
			found := item
			return &found, nil
		}
	}
	return nil, ErrItemNotFound
}

func (f *fakeRepo) Insert(_ context.Context, userID uuid.UUID, name string) (*FoodItem, error) {
	if !f.users[userID] {
		return nil, ErrUserNotFound
	}
	item := FoodItem{ID: uuid.New(), Name: name, CreatedAt: f.nowSeed}
	f.items[userID] = append(f.items[userID], item)
	return &item, nil
}

func (f *fakeRepo) Update(_ context.Context, userID, itemID uuid.UUID, in UpdateItemIn) (*FoodItem, error) {
	for i, item := range f.items[userID] {
		if item.ID == itemID {
			if in.Name != nil {
				f.items[userID][i].Name = *in.Name
			}
			updated := f.items[userID][i]
			return &updated, nil
		}
	}
	return nil, ErrItemNotFound
}

func (f *fakeRepo) Delete(_ context.Context, userID, itemID uuid.UUID) error {
	items := f.items[userID]
	for i, item := range items {
		if item.ID == itemID {
			f.items[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestAddItem_AppendsInOrder(t *testing.T) {
	userID := uuid.New()
	service := NewService(newFakeRepo(userID))

	for _, name := range []string{"Bananas", "Rice", "Olive oil"} {
		_, err := service.AddItem(context.Background(), userID, AddItemIn{Name: name})
		require.NoError(t, err)
	}

	items, err := service.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Bananas", items[0].Name)
	assert.Equal(t, "Rice", items[1].Name)
	assert.Equal(t, "Olive oil", items[2].Name, "new items go to the end")
}

func TestAddItem_EmptyNameLeavesPantryUnchanged(t *testing.T) {
	userID := uuid.New()
	service := NewService(newFakeRepo(userID))

	_, err := service.AddItem(context.Background(), userID, AddItemIn{Name: "Bananas"})
	require.NoError(t, err)

	_, err = service.AddItem(context.Background(), userID, AddItemIn{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	items, err := service.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListItems_UnknownUser(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.ListItems(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveItem_ThenGetFails(t *testing.T) {
	userID := uuid.New()
	service := NewService(newFakeRepo(userID))

	item, err := service.AddItem(context.Background(), userID, AddItemIn{Name: "Bananas"})
	require.NoError(t, err)

	require.NoError(t, service.RemoveItem(context.Background(), userID, item.ID))

	_, err = service.GetItem(context.Background(), userID, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	userID := uuid.New()
	service := NewService(newFakeRepo(userID))

	assert.NoError(t, service.RemoveItem(context.Background(), userID, uuid.New()))
}

func TestUpdateItem_TouchesOnlyTarget(t *testing.T) {
	userID := uuid.New()
	service := NewService(newFakeRepo(userID))

	first, err := service.AddItem(context.Background(), userID, AddItemIn{Name: "Bananas"})
	require.NoError(t, err)
	second, err := service.AddItem(context.Background(), userID, AddItemIn{Name: "Rice"})
	require.NoError(t, err)

	newName := "Plantains"
	updated, err := service.UpdateItem(context.Background(), userID, first.ID, UpdateItemIn{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Plantains", updated.Name)

	items, err := service.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID, "item identity survives the update")
	assert.Equal(t, "Plantains", items[0].Name)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, "Rice", items[1].Name, "sibling items stay untouched")
}

func TestUpdateItem_EmptyNameRejected(t *testing.T) {
	userID := uuid.New()
	service := NewService(newFakeRepo(userID))

	item, err := service.AddItem(context.Background(), userID, AddItemIn{Name: "Bananas"})
	require.NoError(t, err)

	empty := ""
	_, err = service.UpdateItem(context.Background(), userID, item.ID, UpdateItemIn{Name: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateItem_UnknownItem(t *testing.T) {
	userID := uuid.New()
	service := NewService(newFakeRepo(userID))

	name := "Plantains"
	_, err := service.UpdateItem(context.Background(), userID, uuid.New(), UpdateItemIn{Name: &name})
	assert.ErrorIs(t, err, ErrItemNotFound)
}
