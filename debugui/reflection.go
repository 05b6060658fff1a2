package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name      string
	Index     int
	IsPointer bool
	IsSlice   bool
	IsMap     bool
}

type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			kind := field.Type.Kind()
			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Index:     i,
				IsPointer: kind == reflect.Ptr,
				IsSlice:   kind == reflect.Slice,
				IsMap:     kind == reflect.Map,
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()

// Field is one exported field of an inspected value, already formatted.
type Field struct {
	Name  string
	Value string
}

// Fields formats the exported fields of a struct or pointer to struct. Any
// other value yields a single field named after its type.
func Fields(v any) []Field {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return []Field{{Name: val.Type().String(), Value: fmt.Sprintf("%v", v)}}
	}

	infos := globalReflectionCache.GetFields(val.Type())
	fields := make([]Field, 0, len(infos))
	for _, info := range infos {
		fields = append(fields, Field{Name: info.Name, Value: formatField(val.Field(info.Index), info)})
	}
	return fields
}

func formatField(val reflect.Value, info FieldInfo) string {
	switch {
	case info.IsPointer && val.IsNil():
		return "nil"
	case info.IsPointer:
		return fmt.Sprintf("&%s", val.Elem().Type().Name())
	case info.IsSlice:
		return fmt.Sprintf("[%d items]", val.Len())
	case info.IsMap:
		return fmt.Sprintf("map[%d items]", val.Len())
	default:
		return fmt.Sprintf("%v", val.Interface())
	}
}
