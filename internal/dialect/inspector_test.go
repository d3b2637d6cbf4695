package dialect

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athena-dialect/internal/conn"
	"athena-dialect/internal/schema"
)

func zeroLogger() zerolog.Logger { return zerolog.Nop() }

func newInspectorFixture() (*Inspector, *fakeConnection) {
	c := &fakeConnection{schema: "sales", results: map[string][]conn.Row{
		schema.SchemaNamesQuery():            names("schema_name", "default", "sales"),
		schema.TableNamesQuery("sales"):      names("table_name", "orders"),
		"SHOW CREATE TABLE `sales`.`orders`": ordersDDL,
	}}
	return NewInspector(NewAthenaDialect(zeroLogger()), c), c
}

func TestInspector_Memoizes(t *testing.T) {
	ctx := context.Background()
	in, c := newInspectorFixture()

	for i := 0; i < 3; i++ {
		_, err := in.SchemaNames(ctx)
		require.NoError(t, err)
		_, err = in.TableNames(ctx, "")
		require.NoError(t, err)
		_, err = in.TableNames(ctx, "sales")
		require.NoError(t, err)
		ok, err := in.HasTable(ctx, "orders", "")
		require.NoError(t, err)
		assert.True(t, ok)
		cols, err := in.Columns(ctx, "orders", "")
		require.NoError(t, err)
		assert.Len(t, cols, 6)
	}

	assert.Equal(t, 1, c.callCount(schema.SchemaNamesQuery()))
	assert.Equal(t, 1, c.callCount(schema.TableNamesQuery("sales")), "empty and explicit schema share one entry")
	assert.Equal(t, 1, c.callCount("SHOW CREATE TABLE `sales`.`orders`"))

	in.Reset()
	_, err := in.SchemaNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, c.callCount(schema.SchemaNamesQuery()))
}

func TestInspector_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	in, _ := newInspectorFixture()

	first, err := in.TableNames(ctx, "")
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := in.TableNames(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, second)
}

func TestInspector_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("throttled")
	c := &fakeConnection{err: boom}
	in := NewInspector(NewAthenaDialect(zeroLogger()), c)

	_, err := in.SchemaNames(ctx)
	assert.Same(t, boom, err)

	c.err = nil
	c.results = map[string][]conn.Row{schema.SchemaNamesQuery(): names("schema_name", "default")}
	got, err := in.SchemaNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, got)
}

func TestInspector_Concurrent(t *testing.T) {
	ctx := context.Background()
	in, c := newInspectorFixture()
	c.entered = make(chan struct{}, 16)
	c.release = make(chan struct{})

	const callers = 16
	var ready, wg sync.WaitGroup
	ready.Add(callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ready.Done()
			cols, err := in.Columns(ctx, "orders", "sales")
			assert.NoError(t, err)
			assert.Len(t, cols, 6)
		}()
	}

	ready.Wait()
	<-c.entered
	// Give the remaining callers time to queue up behind the running query.
	time.Sleep(50 * time.Millisecond)
	close(c.release)
	wg.Wait()

	assert.Equal(t, 1, c.callCount("SHOW CREATE TABLE `sales`.`orders`"))
}

func TestInspector_ResetDuringLoad(t *testing.T) {
	ctx := context.Background()
	in, c := newInspectorFixture()
	c.entered = make(chan struct{}, 2)
	c.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := in.SchemaNames(ctx)
		done <- err
	}()

	<-c.entered
	in.Reset()
	close(c.release)
	require.NoError(t, <-done)

	got, err := in.SchemaNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "sales"}, got)
	assert.Equal(t, 2, c.callCount(schema.SchemaNamesQuery()), "a load started before Reset is not kept")
}

func TestInspector_CancelledLoadIsNotKept(t *testing.T) {
	in, c := newInspectorFixture()
	c.entered = make(chan struct{}, 2)
	c.release = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := in.SchemaNames(ctx)
		done <- err
	}()

	<-c.entered
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(c.release)
	got, err := in.SchemaNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "sales"}, got)
}

func TestInspector_CapabilityAbsences(t *testing.T) {
	ctx := context.Background()
	in, _ := newInspectorFixture()

	fks, err := in.ForeignKeys(ctx, "orders", "")
	require.NoError(t, err)
	assert.Empty(t, fks)

	pk, err := in.PKConstraint(ctx, "orders", "")
	require.NoError(t, err)
	assert.Empty(t, pk)

	idx, err := in.Indexes(ctx, "orders", "")
	require.NoError(t, err)
	assert.Empty(t, idx)

	assert.Equal(t, "sales", in.DefaultSchemaName())
	assert.Equal(t, "awsathena", in.Dialect().Name())
	assert.NotNil(t, in.Connection())
}
