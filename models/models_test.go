package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestProjectBeforeCreateDefaults(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	p := Project{UserID: "user-1", Name: "Todo", Description: "A todo tracker app", Category: "Web Development", EstimatedDuration: "2 weeks"}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Fatal("id not generated")
	}

	var got Project
	if err := db.First(&got, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.IsPublic {
		t.Error("projects must default to private")
	}
	if got.Status != StatusIdea || got.Difficulty != DifficultyIntermediate {
		t.Errorf("status=%q difficulty=%q", got.Status, got.Difficulty)
	}
	if got.TechStack == nil || len(got.TechStack) != 0 {
		t.Errorf("tech stack should be an empty list, got %#v", got.TechStack)
	}
}

func TestDifficultyValid(t *testing.T) {
	for _, d := range []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced} {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	if Difficulty("expert").Valid() {
		t.Error("expert is not a level")
	}
}

func TestColumnMismatchReport(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("ALTER TABLE projects ADD COLUMN legacy_score integer").Error; err != nil {
		t.Fatalf("alter: %v", err)
	}

	var buf bytes.Buffer
	if err := GenerateColumnMismatchReport(db, &buf); err != nil {
		t.Fatalf("report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "- legacy_score") {
		t.Errorf("report missing extra column:\n%s", out)
	}
	if !strings.Contains(out, "Total mismatched columns across all tables: 1") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestFindColumnMismatches(t *testing.T) {
	got := findColumnMismatches([]string{"id", "Name", "zeta", "alpha"}, []string{"ID", "name"})
	if strings.Join(got, ",") != "alpha,zeta" {
		t.Errorf("got %v", got)
	}
}
