package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunnyway/internal/domain/entities"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    entities.GeoPoint
		wantErr bool
	}{
		{in: "59.9,30.3", want: entities.NewGeoPoint(59.9, 30.3)},
		{in: " 59.9 , 30.3 ", want: entities.NewGeoPoint(59.9, 30.3)},
		{in: "59.9", wantErr: true},
		{in: "north,30.3", wantErr: true},
		{in: "59.9,east", wantErr: true},
		{in: "91,30.3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
