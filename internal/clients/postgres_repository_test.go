package clients

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	mock.ExpectQuery("INSERT INTO clients").
		WithArgs(pgxmock.AnyArg(), "Ayse Yilmaz", "ayse@example.com", "+905551112233").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	client, err := repo.Create(context.Background(), &CreateClientRequest{
		FullName: "Ayse Yilmaz",
		Email:    "ayse@example.com",
		Phone:    "+905551112233",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if client.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestPostgresCreateInvalid(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	if _, err := repo.Create(context.Background(), &CreateClientRequest{}); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestPostgresGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	mock.ExpectQuery("SELECT id, full_name").
		WithArgs("client-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "email", "phone", "created_at"}).
			AddRow("client-1", "Ayse Yilmaz", "ayse@example.com", "", time.Now()))

	client, err := repo.GetByID(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if client.FullName != "Ayse Yilmaz" {
		t.Errorf("expected name Ayse Yilmaz, got %s", client.FullName)
	}
}
