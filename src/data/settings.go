package data

import (
	"sync"

	"gorm.io/gorm"
)

// Setting is a name/value override stored in the settings table.
type Setting struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"type:text"`
}

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from the database into cache. A nil db clears the cache.
func LoadSettings(db *gorm.DB) error {
	next := make(map[string]string)
	if db != nil {
		var settings []Setting
		if err := db.Find(&settings).Error; err != nil {
			return err
		}
		for _, s := range settings {
			next[s.Name] = s.Value
		}
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()
	settingsCache = next
	return nil
}

// GetSetting retrieves a setting value from cache (call LoadSettings first)
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}

// SetSettingForTest replaces a cached value without touching the database.
func SetSettingForTest(name, value string) func() {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if settingsCache == nil {
		settingsCache = make(map[string]string)
	}
	prev, had := settingsCache[name]
	settingsCache[name] = value
	return func() {
		settingsMu.Lock()
		defer settingsMu.Unlock()
		if had {
			settingsCache[name] = prev
		} else {
			delete(settingsCache, name)
		}
	}
}
