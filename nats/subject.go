package nats

import (
	"fmt"
)

func GetTableUpdateSubject(tableCode string) string {
	return fmt.Sprintf("table.%s.updates", tableCode)
}

func GetTableLogSubject(tableCode string) string {
	return fmt.Sprintf("table.%s.log", tableCode)
}
