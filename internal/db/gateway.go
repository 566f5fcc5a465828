package db

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query describes an AND-composed read. Filters are equality predicates;
// Where carries any additional squirrel predicates such as ranges.
type Query struct {
	Filters  squirrel.Eq
	Where    []squirrel.Sqlizer
	Preloads []string
	Order    string
	Limit    int
}

func By(column string, value any) Query {
	return Query{Filters: squirrel.Eq{column: value}}
}

func (query Query) With(preloads ...string) Query {
	query.Preloads = append(slices.Clone(query.Preloads), preloads...)
	return query
}

func (query Query) OrderBy(order string) Query {
	query.Order = order
	return query
}

func (query Query) And(predicate squirrel.Sqlizer) Query {
	query.Where = append(slices.Clone(query.Where), predicate)
	return query
}

func (query Query) predicate() (string, []any, error) {
	parts := make(squirrel.And, 0, len(query.Where)+1)
	if len(query.Filters) > 0 {
		parts = append(parts, query.Filters)
	}
	parts = append(parts, query.Where...)
	if len(parts) == 0 {
		return "", nil, nil
	}
	return parts.ToSql()
}

// Gateway wraps a gorm session with memoized reads and rollback-aware writes.
type Gateway struct {
	database *gorm.DB
	cache    *RequestCache
}

func NewGateway(database *gorm.DB, cache *RequestCache) *Gateway {
	return &Gateway{database: database, cache: cache}
}

func (gateway *Gateway) WithContext(ctx context.Context) *Gateway {
	return &Gateway{database: gateway.database.WithContext(ctx), cache: gateway.cache}
}

func (gateway *Gateway) DB() *gorm.DB {
	return gateway.database
}

func (gateway *Gateway) Cache() *RequestCache {
	return gateway.cache
}

// Transaction runs fn against a transactional gateway sharing this gateway's cache.
// Returning an error from fn rolls back every write made through tx.
func (gateway *Gateway) Transaction(fn func(tx *Gateway) error) error {
	err := gateway.database.Transaction(func(database *gorm.DB) error {
		return fn(&Gateway{database: database, cache: gateway.cache})
	})
	if err != nil {
		gateway.cache.Reset()
		return err
	}
	return nil
}

func (gateway *Gateway) Create(value any) error {
	gateway.cache.Reset()
	return translateError(gateway.database.Omit(clause.Associations).Create(value).Error)
}

func CreateMany[T any](gateway *Gateway, values []T) error {
	if len(values) == 0 {
		return nil
	}
	gateway.cache.Reset()
	return translateError(gateway.database.Omit(clause.Associations).Create(&values).Error)
}

// Update writes the named columns of a loaded entity, including zero values.
func (gateway *Gateway) Update(entity any, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	gateway.cache.Reset()
	result := gateway.database.Model(entity).Select(columns).Updates(entity)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateWhere applies fields to every T row matched by query and reports the affected count.
func UpdateWhere[T any](gateway *Gateway, query Query, fields map[string]any) (int64, error) {
	condition, args, err := query.predicate()
	if err != nil {
		return 0, err
	}
	if condition == "" {
		return 0, fmt.Errorf("update %T without filters", *new(T))
	}

	gateway.cache.Reset()
	result := gateway.database.Model(new(T)).Where(condition, args...).Updates(fields)
	return result.RowsAffected, translateError(result.Error)
}

func (gateway *Gateway) Delete(entity any) error {
	gateway.cache.Reset()
	result := gateway.database.Delete(entity)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWhere removes every T row matched by query.
func DeleteWhere[T any](gateway *Gateway, query Query) (int64, error) {
	condition, args, err := query.predicate()
	if err != nil {
		return 0, err
	}
	if condition == "" {
		return 0, fmt.Errorf("delete %T without filters", *new(T))
	}

	gateway.cache.Reset()
	result := gateway.database.Where(condition, args...).Delete(new(T))
	return result.RowsAffected, translateError(result.Error)
}

func FindOne[T any](gateway *Gateway, query Query) (T, error) {
	var zero T
	key, err := cacheKey[T]("one", query)
	if err != nil {
		return zero, err
	}
	if cached, ok := gateway.cache.Get(key); ok {
		return cached.(T), nil
	}

	scoped, err := gateway.scope(query)
	if err != nil {
		return zero, err
	}

	var record T
	if err := scoped.First(&record).Error; err != nil {
		return zero, translateError(err)
	}
	gateway.cache.Put(key, record)
	return record, nil
}

func FindMany[T any](gateway *Gateway, query Query) ([]T, error) {
	key, err := cacheKey[T]("many", query)
	if err != nil {
		return nil, err
	}
	if cached, ok := gateway.cache.Get(key); ok {
		return slices.Clone(cached.([]T)), nil
	}

	scoped, err := gateway.scope(query)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0)
	if err := scoped.Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	gateway.cache.Put(key, slices.Clone(records))
	return records, nil
}

func Count[T any](gateway *Gateway, query Query) (int64, error) {
	key, err := cacheKey[T]("count", query)
	if err != nil {
		return 0, err
	}
	if cached, ok := gateway.cache.Get(key); ok {
		return cached.(int64), nil
	}

	condition, args, err := query.predicate()
	if err != nil {
		return 0, err
	}
	scoped := gateway.database.Model(new(T))
	if condition != "" {
		scoped = scoped.Where(condition, args...)
	}

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return 0, translateError(err)
	}
	gateway.cache.Put(key, total)
	return total, nil
}

func (gateway *Gateway) scope(query Query) (*gorm.DB, error) {
	scoped := gateway.database
	condition, args, err := query.predicate()
	if err != nil {
		return nil, err
	}
	if condition != "" {
		scoped = scoped.Where(condition, args...)
	}
	for _, preload := range query.Preloads {
		scoped = scoped.Preload(preload, orderByID)
	}
	order := query.Order
	if order == "" {
		order = "id ASC"
	}
	scoped = scoped.Order(order)
	if query.Limit > 0 {
		scoped = scoped.Limit(query.Limit)
	}
	return scoped, nil
}

func orderByID(database *gorm.DB) *gorm.DB {
	return database.Order("id ASC")
}

// cacheKey encodes the entity type, the rendered predicate and its arguments.
// squirrel.Eq renders keys in sorted order so equal filter maps share a key.
func cacheKey[T any](kind string, query Query) (string, error) {
	condition, args, err := query.predicate()
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s|%T|%s|%v", kind, *new(T), condition, args)
	if len(query.Preloads) > 0 {
		fmt.Fprintf(&builder, "|preload=%s", strings.Join(query.Preloads, ","))
	}
	if query.Order != "" {
		fmt.Fprintf(&builder, "|order=%s", query.Order)
	}
	if query.Limit > 0 {
		fmt.Fprintf(&builder, "|limit=%d", query.Limit)
	}
	return builder.String(), nil
}
