// migrate 套用或回滾嵌入的資料庫 migration
//
//	DATABASE_URL=postgres://... migrate up
//	DATABASE_URL=postgres://... migrate down
package main

import (
	"fmt"
	"log"
	"os"

	"iot-web/internal/database"
)

var (
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	exitFunc        = os.Exit
)

func run(args []string) error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: migrate up|down")
	}

	switch args[0] {
	case "up":
		return runMigrationsFn(dbURL)
	case "down":
		return rollbackAllFn(dbURL)
	}
	return fmt.Errorf("未知的指令 %q，請使用 up 或 down", args[0])
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
