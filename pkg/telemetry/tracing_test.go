package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/Carrito-api/pkg/telemetry"
)

func TestInit_ExportaSpansAlWriter(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := telemetry.Init(telemetry.Config{Stdout: true, Out: &buf})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "operacion-de-prueba")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "operacion-de-prueba")
}

func TestInit_SinExportador(t *testing.T) {
	shutdown, err := telemetry.Init(telemetry.Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
