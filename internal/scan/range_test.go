package scan_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaloney/lanprobe/internal/scan"
)

func mustValue(t *testing.T, text string) uint32 {
	value, ok := scan.AddressValue(text)

	assert.True(t, ok)

	return value
}

func TestParseCIDR(t *testing.T) {
	t.Run("masks the base address to the block boundaries", func(st *testing.T) {
		start, end, ok := scan.ParseCIDR("192.168.0.1/24")

		assert.True(st, ok)
		assert.Equal(st, mustValue(st, "192.168.0.0"), start)
		assert.Equal(st, mustValue(st, "192.168.0.255"), end)
	})

	t.Run("handles the full and single-host prefixes", func(st *testing.T) {
		start, end, ok := scan.ParseCIDR("10.1.2.3/32")

		assert.True(st, ok)
		assert.Equal(st, start, end)
		assert.Equal(st, mustValue(st, "10.1.2.3"), start)

		start, end, ok = scan.ParseCIDR("0.0.0.0/0")

		assert.True(st, ok)
		assert.Equal(st, uint32(0), start)
		assert.Equal(st, ^uint32(0), end)
	})

	t.Run("rejects malformed input", func(st *testing.T) {
		invalid := []string{
			"",
			"192.168.0.1",
			"192.168.0/24",
			"192.168.0.1.5/24",
			"192.168.0.256/24",
			"a.b.c.d/8",
			"192.168.0.1/33",
			"192.168.0.1/-1",
			"192.168.0.1/x",
		}

		for _, text := range invalid {
			_, _, ok := scan.ParseCIDR(text)
			assert.False(st, ok, text)
		}
	})
}

func TestEnumerate(t *testing.T) {
	t.Run("produces every address in ascending order", func(st *testing.T) {
		start, end, ok := scan.ParseCIDR("10.0.0.0/30")

		assert.True(st, ok)

		addresses := scan.Enumerate(start, end)

		assert.Equal(st, []string{
			"10.0.0.0",
			"10.0.0.1",
			"10.0.0.2",
			"10.0.0.3",
		}, addresses)
	})

	t.Run("count matches the prefix length", func(st *testing.T) {
		for _, prefix := range []int{32, 30, 26, 24} {
			start, end, ok := scan.ParseCIDR("172.16.4.0/" + strconv.Itoa(prefix))

			assert.True(st, ok)

			addresses := scan.Enumerate(start, end)

			assert.Equal(st, 1<<(32-prefix), len(addresses))

			seen := map[string]bool{}
			previous := uint32(0)

			for i, addr := range addresses {
				assert.False(st, seen[addr])
				seen[addr] = true

				value := mustValue(st, addr)

				if i > 0 {
					assert.Greater(st, value, previous)
				}

				previous = value
			}
		}
	})

	t.Run("start greater than end yields empty sequence", func(st *testing.T) {
		addresses := scan.EnumerateRange("10.0.0.5", "10.0.0.2")

		assert.Empty(st, addresses)
	})
}

func TestEnumerateRange(t *testing.T) {
	t.Run("includes both endpoints", func(st *testing.T) {
		addresses := scan.EnumerateRange("10.0.0.2", "10.0.0.5")

		assert.Equal(st, []string{
			"10.0.0.2",
			"10.0.0.3",
			"10.0.0.4",
			"10.0.0.5",
		}, addresses)
	})

	t.Run("invalid endpoints yield empty sequence", func(st *testing.T) {
		assert.Empty(st, scan.EnumerateRange("10.0.0.x", "10.0.0.5"))
		assert.Empty(st, scan.EnumerateRange("10.0.0.2", "10.0.0"))
	})
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, scan.IsValidAddress("192.168.1.1"))
	assert.True(t, scan.IsValidAddress("0.0.0.0"))
	assert.True(t, scan.IsValidAddress("255.255.255.255"))
	assert.False(t, scan.IsValidAddress("256.0.0.1"))
	assert.False(t, scan.IsValidAddress("1.2.3"))
	assert.False(t, scan.IsValidAddress("1.2.3.4.5"))
	assert.False(t, scan.IsValidAddress("one.two.three.four"))
	assert.False(t, scan.IsValidAddress(""))
}

func TestExpandTargets(t *testing.T) {
	t.Run("flattens cidr blocks and bare addresses", func(st *testing.T) {
		addresses := scan.ExpandTargets([]string{
			"192.168.1.0/24",
			"10.0.0.7",
		})

		assert.Equal(st, 257, len(addresses))
		assert.Equal(st, "10.0.0.7", addresses[256])
	})

	t.Run("drops invalid entries", func(st *testing.T) {
		addresses := scan.ExpandTargets([]string{
			"not-an-address",
			"300.0.0.1/24",
			"10.0.0.1",
		})

		assert.Equal(st, []string{"10.0.0.1"}, addresses)
	})
}
