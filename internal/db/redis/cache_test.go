package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/talentbridge/internal/db"
)

func TestMGet_MixedHits(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("MGET", "a", "b")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("va"), mock.RedisNil())))

	s := NewStoreForTest(c)
	vals, err := s.MGet(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 2 || string(vals[0]) != "va" || vals[1] != nil {
		t.Fatalf("unexpected values: %q", vals)
	}
}

func TestMGet_Empty(t *testing.T) {
	s := NewStoreForTest(nil)
	vals, err := s.MGet(context.Background(), nil)
	if err != nil || vals != nil {
		t.Fatalf("expected nil,nil got %v,%v", vals, err)
	}
}

func TestMGet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(errors.New("LOADING")))

	s := NewStoreForTest(c)
	_, err := s.MGet(context.Background(), []string{"a"})

	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpMGet {
		t.Fatalf("expected *db.Error MGET, got %v", err)
	}
}

func TestSetMany(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("SET", "a", "1", "EX", "60"),
			mock.Match("SET", "b", "2", "EX", "60"),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString("OK")),
			mock.Result(mock.RedisString("OK")),
		})

	s := NewStoreForTest(c)
	err := s.SetMany(context.Background(), []db.Entry{
		{Key: "a", Value: []byte("1")},
		{Key: "b", Value: []byte("2")},
	}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetMany_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{mock.ErrorResult(errors.New("OOM"))})

	s := NewStoreForTest(c)
	err := s.SetMany(context.Background(), []db.Entry{{Key: "a", Value: []byte("1")}}, time.Minute)

	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSet {
		t.Fatalf("expected *db.Error SET, got %v", err)
	}
}
