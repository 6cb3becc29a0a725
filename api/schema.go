package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/graphql-go/graphql"

	"github.com/ellsworth/tunescope/present"
	"github.com/ellsworth/tunescope/track"
)

func (s *Server) initSchema() error {
	paramType, paramMut := newParamsType("ParamType", s.params)

	nowPlayingType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "NowPlaying",
			Fields: graphql.Fields{
				"title": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(track.Info).Title, nil
					},
				},
				"artist": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(track.Info).Artist, nil
					},
				},
				"artUrl": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(track.Info).ArtURL, nil
					},
				},
				"recognizedAt": &graphql.Field{
					Type: graphql.DateTime,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(track.Info).RecognizedAt, nil
					},
				},
			},
		},
	)

	rootQuery := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootQuery",
			Fields: graphql.Fields{
				"nowPlaying": &graphql.Field{
					Type: nowPlayingType,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						snap := s.store.Read()
						if snap.Current == nil {
							return nil, nil
						}
						return snap.Current.Info, nil
					},
				},
				"status": &graphql.Field{
					Type: graphql.String,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return s.store.Read().Status.String(), nil
					},
				},
				"lastError": &graphql.Field{
					Type: graphql.String,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return s.store.Read().Err, nil
					},
				},
				"version": &graphql.Field{
					Type: graphql.Int,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return int(s.store.Read().Version), nil
					},
				},
				"params": &graphql.Field{
					Type: paramType,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return s.params.Get(), nil
					},
				},
			},
		},
	)
	rootMut := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootMut",
			Fields: graphql.Fields{
				"params": paramMut,
			},
		},
	)

	schema, err := graphql.NewSchema(
		graphql.SchemaConfig{
			Query:    rootQuery,
			Mutation: rootMut,
		},
	)
	if err != nil {
		return err
	}
	s.schema = schema
	return nil
}

// newParamsType builds a graphql object, input type, and mutation field for
// the presentation params by reflecting over their json tags. The mutation
// clones the current params, applies the given fields, and swaps the clone in,
// so the render loop never observes a partial update.
func newParamsType(name string, store *present.ParamStore) (*graphql.Object, *graphql.Field) {
	typ := reflect.TypeOf(present.Params{})
	tagMap := newJSONTagFieldMap(typ)

	fields := graphql.Fields{}
	inputFields := graphql.InputObjectConfigFieldMap{}

	resolver := func(tag string) graphql.FieldResolveFn {
		field, ok := tagMap[tag]
		if !ok {
			panic("unknown tag: " + tag)
		}
		return func(p graphql.ResolveParams) (interface{}, error) {
			params, ok := p.Source.(*present.Params)
			if !ok {
				return nil, fmt.Errorf("unexpected source: %#v", p.Source)
			}
			return reflect.ValueOf(params).Elem().Field(field).Interface(), nil
		}
	}

	for tag, i := range tagMap {
		f := typ.Field(i)
		var gt graphql.Type
		switch f.Type.Kind() {
		case reflect.Bool:
			gt = graphql.Boolean
		case reflect.Float32, reflect.Float64:
			gt = graphql.Float
		case reflect.String:
			gt = graphql.String
		case reflect.Int, reflect.Int8, reflect.Int32, reflect.Int64:
			gt = graphql.Int
		default:
			panic(fmt.Sprint("unsupported type ", f.Type))
		}
		fields[tag] = &graphql.Field{Type: gt, Resolve: resolver(tag)}
		inputFields[tag] = &graphql.InputObjectFieldConfig{Type: gt}
	}

	paramType := graphql.NewObject(
		graphql.ObjectConfig{
			Name:   name,
			Fields: fields,
		})
	inputParamType := graphql.NewInputObject(
		graphql.InputObjectConfig{
			Name:   "input" + name,
			Fields: inputFields,
		})
	// Serializes mutation writers; readers stay lock-free on the store.
	var mu sync.Mutex
	paramMut := &graphql.Field{
		Type: paramType,
		Args: graphql.FieldConfigArgument{
			"params": &graphql.ArgumentConfig{Type: inputParamType},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			args, ok := p.Args["params"].(map[string]interface{})
			if !ok {
				return nil, errors.New("missing arg: params")
			}
			mu.Lock()
			defer mu.Unlock()
			next := *store.Get()
			elem := reflect.ValueOf(&next).Elem()
			for arg, val := range args {
				field, ok := tagMap[arg]
				if !ok {
					continue
				}
				elem.Field(field).Set(reflect.ValueOf(val))
			}
			store.Set(next)
			return store.Get(), nil
		},
	}

	return paramType, paramMut
}

func newJSONTagFieldMap(typ reflect.Type) map[string]int {
	m := make(map[string]int)
	for i := 0; i < typ.NumField(); i++ {
		tag := strings.Split(typ.Field(i).Tag.Get("json"), ",")[0]
		if tag == "" {
			continue
		}
		m[tag] = i
	}
	return m
}
