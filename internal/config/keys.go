package config

import (
	"strconv"
)

func (c *Config) LaneKeys(nKeys int) []rune {
	if keys, ok := c.Keys[strconv.Itoa(nKeys)]; ok {
		return []rune(keys)
	}
	return []rune(c.Keys["4"])
}

// KeyColumn returns the lane bound to the rune, or -1.
func (c *Config) KeyColumn(r rune, nKeys int) int {
	for i, k := range c.LaneKeys(nKeys) {
		if i >= nKeys {
			break
		}
		if r == k {
			return i
		}
	}
	return -1
}

// CodeColumn returns the lane bound to the evdev key code, or -1.
func (c *Config) CodeColumn(code uint16, nKeys int) int {
	codes, ok := c.KeyCodes[strconv.Itoa(nKeys)]
	if !ok {
		return -1
	}
	for i, k := range codes {
		if i >= nKeys {
			break
		}
		if int(code) == k {
			return i
		}
	}
	return -1
}
