package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/plantops/tripchat-engine/pkg/session"
)

func newContext() *session.Context {
	return &session.Context{Entities: make(map[string]string)}
}

func TestProcessExtractsEntities(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	ctx := newContext()
	out := e.Process(ctx, "trip id is TRP-9921 and the driver id is D-104")

	assert.Equal(t, "trip id is TRP-9921 and the driver id is D-104", out)
	assert.Equal(t, "TRP-9921", ctx.Entities["tripId"])
	assert.Equal(t, "D-104", ctx.Entities["driverId"])
	// driverId appears later in the catalog, so it wins the reference slot.
	assert.Equal(t, "driverId", ctx.LastEntity)
}

func TestProcessContextSwitchResetsEntities(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	ctx := newContext()
	ctx.Entities["vehicleNumber"] = "MH12AB1234"
	ctx.Entities["tripId"] = "T1"
	ctx.LastEntity = "tripId"

	e.Process(ctx, "what about DL01CD5678")

	assert.Equal(t, map[string]string{"vehicleNumber": "DL01CD5678"}, ctx.Entities)
	assert.Equal(t, "vehicleNumber", ctx.LastEntity)
}

func TestProcessSameVehicleIsNotASwitch(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	ctx := newContext()
	ctx.Entities["vehicleNumber"] = "MH12AB1234"
	ctx.Entities["tripId"] = "T1"

	e.Process(ctx, "where is MH12AB1234 now")

	assert.Equal(t, "T1", ctx.Entities["tripId"], "same vehicle must keep prior entities")
}

func TestProcessLowercaseVehicleIsNotASwitch(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	ctx := newContext()
	ctx.Entities["vehicleNumber"] = "MH12AB1234"
	ctx.Entities["tripId"] = "T1"

	e.Process(ctx, "where is dl01cd5678 now")

	assert.Equal(t, "MH12AB1234", ctx.Entities["vehicleNumber"])
}

func TestProcessResolvesPronouns(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	ctx := newContext()
	ctx.Entities["vehicleNumber"] = "MH12AB1234"
	ctx.LastEntity = "vehicleNumber"

	out := e.Process(ctx, "what is its status")
	assert.Equal(t, "what is MH12AB1234 status", out)

	out = e.Process(ctx, "has it left the plant")
	assert.Equal(t, "has MH12AB1234 left the plant", out)
}

func TestProcessPronounsUntouchedWhenPatternMatched(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	ctx := newContext()
	ctx.Entities["vehicleNumber"] = "MH12AB1234"
	ctx.LastEntity = "vehicleNumber"

	out := e.Process(ctx, "is it true that the seal number is SL-88")

	assert.Equal(t, "is it true that the seal number is SL-88", out)
	assert.Equal(t, "SL-88", ctx.Entities["sealNumber"])
}

func TestProcessPronounsUntouchedWithoutReference(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	ctx := newContext()
	out := e.Process(ctx, "what happened to it")

	assert.Equal(t, "what happened to it", out)
}
