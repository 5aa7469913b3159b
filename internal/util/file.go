package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func ReadIntFromFile(path string) (value int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	text := string(data)
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	text = strings.TrimSpace(text)
	value, err = strconv.Atoi(text)
	return value, err
}

// WriteIntToFile write a single integer to a file path
func WriteIntToFile(value int, path string) error {
	valueAsString := fmt.Sprintf("%d", value)
	return os.WriteFile(path, []byte(valueAsString), 0644)
}
