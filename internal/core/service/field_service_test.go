package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikeplan/trip-planner/internal/core/domain"
)

func TestProjectField_NoRowsProjectsDefaults(t *testing.T) {
	f := newFixture()

	info := f.project(t, domain.FieldEmergencyInfo)
	assert.False(t, info.Locked)
	assert.False(t, info.CanEdit)
	assert.Equal(t, domain.EmergencyInfo{PoliceStation: domain.DefaultPoliceStation}, info.Value)

	role := f.project(t, domain.FieldUserRole)
	assert.False(t, role.Locked)
	assert.False(t, role.CanEdit)
	assert.Equal(t, domain.Role(""), role.Value)
}

func TestProjectField_ConfiguredPoliceStation(t *testing.T) {
	st := newFaultyStore()
	svc := NewFieldService(st, nil, domain.Defaults{PoliceStation: "Station 9"}, zerolog.Nop())

	p, err := svc.ProjectField(context.Background(), ownerID, domain.FieldEmergencyInfo)
	require.NoError(t, err)
	info, ok := p.EmergencyInfo()
	require.True(t, ok)
	assert.Equal(t, "Station 9", info.PoliceStation)
}

func TestProjectField_CoercesLooseFlags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"native true", `true`, true},
		{"native false", `false`, false},
		{"string true", `"true"`, true},
		{"string TRUE", `"TRUE"`, true},
		{"string false", `"false"`, false},
		{"number", `1`, false},
		{"yes", `"yes"`, false},
		{"null", `null`, false},
		{"garbage", `{not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.putRaw(t, ownerID, domain.FieldUserRole.LockedKey(), tt.raw)
			f.putRaw(t, ownerID, domain.FieldUserRole.CanEditKey(), tt.raw)

			p := f.project(t, domain.FieldUserRole)
			assert.Equal(t, tt.want, p.Locked)
			assert.Equal(t, tt.want, p.CanEdit)
		})
	}
}

func TestProjectField_MalformedPayloadFallsBackToDefault(t *testing.T) {
	f := newFixture()
	f.putRaw(t, ownerID, domain.FieldEmergencyInfo.ValueKey(), `[1,2,3]`)
	f.putRaw(t, ownerID, domain.FieldUserRole.ValueKey(), `"astronaut"`)

	info := f.project(t, domain.FieldEmergencyInfo)
	assert.Equal(t, domain.EmergencyInfo{PoliceStation: domain.DefaultPoliceStation}, info.Value)

	role := f.project(t, domain.FieldUserRole)
	assert.Equal(t, domain.Role(""), role.Value)
}

func TestProjectField_UnknownField(t *testing.T) {
	f := newFixture()
	_, err := f.fields.ProjectField(context.Background(), ownerID, domain.FieldName("nickname"))
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestProjectField_StoreFailure(t *testing.T) {
	st := newFaultyStore()
	st.getErr = errBoom
	svc := NewFieldService(st, nil, domain.Defaults{}, zerolog.Nop())

	_, err := svc.ProjectField(context.Background(), ownerID, domain.FieldUserRole)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, errBoom)
}

func TestWriteField_UnlockedSealsField(t *testing.T) {
	for _, field := range domain.GovernedFields {
		t.Run(string(field), func(t *testing.T) {
			f := newFixture()
			v := valueFor(field, 0)

			p, err := f.fields.WriteField(context.Background(), owner, ownerID, field, v)
			require.NoError(t, err)
			assert.Equal(t, domain.StateLockedSealed, p.State())
			assert.Equal(t, v, p.Value)

			stored := f.project(t, field)
			assert.True(t, stored.Locked)
			assert.False(t, stored.CanEdit)
			assert.Equal(t, v, stored.Value)
		})
	}
}

func TestWriteField_SealedRejectsAndKeepsValue(t *testing.T) {
	for _, field := range domain.GovernedFields {
		t.Run(string(field), func(t *testing.T) {
			f := newFixture()
			first := valueFor(field, 0)
			_, err := f.fields.WriteField(context.Background(), owner, ownerID, field, first)
			require.NoError(t, err)

			_, err = f.fields.WriteField(context.Background(), owner, ownerID, field, valueFor(field, 1))
			assert.ErrorIs(t, err, domain.ErrFieldLocked)

			stored := f.project(t, field)
			assert.Equal(t, first, stored.Value)
			assert.Equal(t, domain.StateLockedSealed, stored.State())
		})
	}
}

func TestWriteField_OpenStaysOpen(t *testing.T) {
	for _, field := range domain.GovernedFields {
		t.Run(string(field), func(t *testing.T) {
			f := newFixture()
			_, err := f.fields.WriteField(context.Background(), owner, ownerID, field, valueFor(field, 0))
			require.NoError(t, err)
			require.NoError(t, f.overrides.SetOverride(context.Background(), admin, ownerID, field, true))

			for i := 1; i <= 3; i++ {
				v := valueFor(field, i)
				p, err := f.fields.WriteField(context.Background(), owner, ownerID, field, v)
				require.NoError(t, err)
				assert.Equal(t, domain.StateLockedOpen, p.State())
				assert.Equal(t, v, f.project(t, field).Value)
			}
		})
	}
}

func TestWriteField_RawLockedStringSeals(t *testing.T) {
	f := newFixture()
	f.putRaw(t, ownerID, domain.FieldUserRole.LockedKey(), `"TRUE"`)

	_, err := f.fields.WriteField(context.Background(), owner, ownerID, domain.FieldUserRole, domain.RoleChef)
	assert.ErrorIs(t, err, domain.ErrFieldLocked)
}

func TestWriteField_NonOwnerDenied(t *testing.T) {
	f := newFixture()

	for _, actor := range []domain.Actor{
		{UserID: "someone-else"},
		admin,
		{},
	} {
		_, err := f.fields.WriteField(context.Background(), actor, ownerID, domain.FieldUserRole, domain.RoleChef)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied, "actor %+v", actor)
	}

	assert.Equal(t, domain.StateUnlocked, f.project(t, domain.FieldUserRole).State())
	assert.Empty(t, f.sink.Events())
}

func TestWriteField_InvalidValue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.fields.WriteField(ctx, owner, ownerID, domain.FieldUserRole, domain.Role("astronaut"))
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.fields.WriteField(ctx, owner, ownerID, domain.FieldEmergencyInfo, domain.EmergencyInfo{ContactName: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.fields.WriteField(ctx, owner, ownerID, domain.FieldEmergencyInfo, domain.RoleChef)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	assert.Equal(t, domain.StateUnlocked, f.project(t, domain.FieldEmergencyInfo).State())
	assert.Equal(t, domain.StateUnlocked, f.project(t, domain.FieldUserRole).State())
}

func TestWriteField_UnknownField(t *testing.T) {
	f := newFixture()
	_, err := f.fields.WriteField(context.Background(), owner, ownerID, domain.FieldName("nickname"), "x")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestWriteField_AuditsAcceptedWrite(t *testing.T) {
	f := newFixture()
	_, err := f.fields.WriteField(context.Background(), owner, ownerID, domain.FieldUserRole, domain.RoleChef)
	require.NoError(t, err)

	events := f.sink.Events()
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, domain.AuditWrite, ev.Action)
	assert.Equal(t, ownerID, ev.UserID)
	assert.Equal(t, ownerID, ev.ActorID)
	assert.Equal(t, domain.FieldUserRole, ev.Field)
	assert.True(t, ev.Locked)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.At.IsZero())
}

func TestWriteField_ValueUpsertFailure(t *testing.T) {
	st := newFaultyStore()
	st.upsertErrFor[domain.FieldUserRole.ValueKey()] = errBoom
	svc := NewFieldService(st, nil, domain.Defaults{}, zerolog.Nop())

	_, err := svc.WriteField(context.Background(), owner, ownerID, domain.FieldUserRole, domain.RoleChef)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	var se *domain.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "upsert", se.Op)

	_, found, _ := st.Store.Get(context.Background(), ownerID, domain.FieldUserRole.LockedKey())
	assert.False(t, found)
}

func TestWriteField_LockFailureRemovesFreshValue(t *testing.T) {
	st := newFaultyStore()
	st.upsertErrFor[domain.FieldEmergencyInfo.LockedKey()] = errBoom
	svc := NewFieldService(st, nil, domain.Defaults{}, zerolog.Nop())

	_, err := svc.WriteField(context.Background(), owner, ownerID, domain.FieldEmergencyInfo, infoA)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, found, err := st.Store.Get(context.Background(), ownerID, domain.FieldEmergencyInfo.ValueKey())
	require.NoError(t, err)
	assert.False(t, found, "value written before the failed lock must be rolled back")
}

func TestWriteField_LockFailureRestoresPreviousValue(t *testing.T) {
	st := newFaultyStore()
	previous := json.RawMessage(`"traveler"`)
	_, err := st.Store.Upsert(context.Background(), ownerID, domain.FieldUserRole.ValueKey(), previous)
	require.NoError(t, err)
	st.upsertErrFor[domain.FieldUserRole.LockedKey()] = errBoom
	svc := NewFieldService(st, nil, domain.Defaults{}, zerolog.Nop())

	_, err = svc.WriteField(context.Background(), owner, ownerID, domain.FieldUserRole, domain.RoleChef)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	got, found, err := st.Store.Get(context.Background(), ownerID, domain.FieldUserRole.ValueKey())
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, string(previous), string(got))
}

func TestWriteField_UnlockedWithStaleCanEditSeals(t *testing.T) {
	f := newFixture()
	f.putRaw(t, ownerID, domain.FieldEmergencyInfo.CanEditKey(), `"true"`)

	p, err := f.fields.WriteField(context.Background(), owner, ownerID, domain.FieldEmergencyInfo, infoA)
	require.NoError(t, err)
	assert.Equal(t, domain.StateLockedSealed, p.State())
	assert.False(t, p.CanEdit)

	got := f.project(t, domain.FieldEmergencyInfo)
	assert.Equal(t, domain.StateLockedSealed, got.State())

	_, err = f.fields.WriteField(context.Background(), owner, ownerID, domain.FieldEmergencyInfo, infoB)
	assert.ErrorIs(t, err, domain.ErrFieldLocked)
}

func TestWriteField_CanEditResetFailureRestoresValue(t *testing.T) {
	st := newFaultyStore()
	ctx := context.Background()
	_, err := st.Store.Upsert(ctx, ownerID, domain.FieldUserRole.CanEditKey(), domain.EncodeFlag(true))
	require.NoError(t, err)
	st.upsertErrFor[domain.FieldUserRole.CanEditKey()] = errBoom
	svc := NewFieldService(st, nil, domain.Defaults{}, zerolog.Nop())

	_, err = svc.WriteField(ctx, owner, ownerID, domain.FieldUserRole, domain.RoleChef)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, found, err := st.Store.Get(ctx, ownerID, domain.FieldUserRole.ValueKey())
	require.NoError(t, err)
	assert.False(t, found)
	_, found, _ = st.Store.Get(ctx, ownerID, domain.FieldUserRole.LockedKey())
	assert.False(t, found)
}

func TestWriteField_LockFailureRestoresCanEdit(t *testing.T) {
	st := newFaultyStore()
	ctx := context.Background()
	_, err := st.Store.Upsert(ctx, ownerID, domain.FieldUserRole.CanEditKey(), domain.EncodeFlag(true))
	require.NoError(t, err)
	st.upsertErrFor[domain.FieldUserRole.LockedKey()] = errBoom
	svc := NewFieldService(st, nil, domain.Defaults{}, zerolog.Nop())

	_, err = svc.WriteField(ctx, owner, ownerID, domain.FieldUserRole, domain.RoleChef)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	got, found, err := st.Store.Get(ctx, ownerID, domain.FieldUserRole.CanEditKey())
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, domain.CoerceBool(got))
	_, found, _ = st.Store.Get(ctx, ownerID, domain.FieldUserRole.ValueKey())
	assert.False(t, found)
}

func TestWriteField_GetFailure(t *testing.T) {
	st := newFaultyStore()
	st.getErr = errBoom
	sink := &recordingSink{}
	svc := NewFieldService(st, sink, domain.Defaults{}, zerolog.Nop())

	_, err := svc.WriteField(context.Background(), owner, ownerID, domain.FieldUserRole, domain.RoleChef)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, sink.Events())
}

func TestWatch_SendsInitialAndRefreshedProjections(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := f.fields.Watch(ctx, ownerID, domain.FieldUserRole)
	require.NoError(t, err)

	first := receive(t, updates)
	assert.Equal(t, domain.StateUnlocked, first.State())

	// A change to another field of the same user must not produce an update.
	_, err = f.fields.WriteField(ctx, owner, ownerID, domain.FieldEmergencyInfo, infoA)
	require.NoError(t, err)
	_, err = f.fields.WriteField(ctx, owner, ownerID, domain.FieldUserRole, domain.RoleChef)
	require.NoError(t, err)

	var latest domain.Projection
	for latest.State() != domain.StateLockedSealed {
		latest = receive(t, updates)
		assert.Equal(t, domain.FieldUserRole, latest.Field)
	}
	assert.Equal(t, domain.RoleChef, latest.Value)

	require.NoError(t, f.overrides.SetOverride(ctx, admin, ownerID, domain.FieldUserRole, true))
	for latest.State() != domain.StateLockedOpen {
		latest = receive(t, updates)
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())

	updates, err := f.fields.Watch(ctx, ownerID, domain.FieldEmergencyInfo)
	require.NoError(t, err)
	receive(t, updates)

	cancel()
	select {
	case _, ok := <-updates:
		for ok {
			_, ok = <-updates
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}

func TestWatch_UnknownField(t *testing.T) {
	f := newFixture()
	_, err := f.fields.Watch(context.Background(), ownerID, domain.FieldName("nickname"))
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func receive(t *testing.T, ch <-chan domain.Projection) domain.Projection {
	t.Helper()
	select {
	case p, ok := <-ch:
		require.True(t, ok, "channel closed")
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for projection")
		return domain.Projection{}
	}
}

func TestWriteField_EmptyPoliceStationProjectsDefault(t *testing.T) {
	f := newFixture()
	p, err := f.fields.WriteField(context.Background(), owner, ownerID, domain.FieldEmergencyInfo,
		domain.EmergencyInfo{ContactName: "A", ContactPhone: "123"})
	require.NoError(t, err)

	info, ok := p.EmergencyInfo()
	require.True(t, ok)
	assert.Equal(t, domain.DefaultPoliceStation, info.PoliceStation)
}
