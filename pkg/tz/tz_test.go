package tz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert.Equal(t, time.UTC, Load(""))
	assert.Equal(t, time.UTC, Load("Mars/Olympus_Mons"))
	assert.Equal(t, "Europe/Paris", Load("Europe/Paris").String())
}
