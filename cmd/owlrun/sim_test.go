package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/owl-run/internal/games/owlrun"
)

func TestSimulateIsReproducible(t *testing.T) {
	opts := simOptions{Seed: 20240101, Seconds: 5, Lane: 2, TickRate: 60}

	var a, b bytes.Buffer
	snapA, err := simulate(&a, opts)
	require.NoError(t, err)
	snapB, err := simulate(&b, opts)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, snapA.Hash(), snapB.Hash())
	assert.Contains(t, a.String(), "seed 20240101")
	assert.Contains(t, a.String(), "spawn")
	assert.Contains(t, a.String(), "final")
}

func TestSimulateHoldsLane(t *testing.T) {
	var out bytes.Buffer
	snap, err := simulate(&out, simOptions{Seed: 3, Seconds: 1, Lane: 0, TickRate: 60})
	require.NoError(t, err)
	assert.Equal(t, 0, snap.PlayerTarget)
}

func TestSimulateAllEvents(t *testing.T) {
	var spawns, all bytes.Buffer
	_, err := simulate(&spawns, simOptions{Seed: 11, Seconds: 3, Lane: 4, TickRate: 60})
	require.NoError(t, err)
	_, err = simulate(&all, simOptions{Seed: 11, Seconds: 3, Lane: 4, TickRate: 60, AllEvents: true})
	require.NoError(t, err)

	assert.Equal(t, spawnLines(spawns.String()), spawnLines(all.String()))
	assert.Contains(t, all.String(), "final")
}

func spawnLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "  spawn     ") {
			lines = append(lines, l)
		}
	}
	return lines
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	var out bytes.Buffer
	_, err := simulate(&out, simOptions{Seed: 1, Seconds: 1, Lane: owlrun.Lanes})
	assert.Error(t, err)

	_, err = simulate(&out, simOptions{Seed: 1, Seconds: 0, Lane: 1})
	assert.Error(t, err)

	_, err = simulate(&out, simOptions{Seed: 1, Seconds: 1, Lane: 1, Character: "wizard"})
	assert.Error(t, err)
}

func TestSimulateCharacter(t *testing.T) {
	var out bytes.Buffer
	_, err := simulate(&out, simOptions{Seed: 5, Seconds: 0.5, Lane: 2, Character: "scout"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "runner Scout")

	out.Reset()
	_, err = simulate(&out, simOptions{Seed: 5, Seconds: 0.5, Lane: 2, Character: "2"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "runner Bruiser")
}

func TestWriteList(t *testing.T) {
	var out bytes.Buffer
	writeList(&out)

	s := out.String()
	assert.Contains(t, s, owlrun.ID)
	assert.Contains(t, s, owlrun.DailyID)
	for _, a := range owlrun.Archetypes() {
		assert.Contains(t, s, a.String())
	}
	for _, u := range owlrun.Upgrades() {
		assert.Contains(t, s, u.Title())
	}
}
