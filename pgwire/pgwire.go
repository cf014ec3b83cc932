// Package pgwire decodes and encodes range values at the PostgreSQL wire protocol boundary.
//
// It works on pgproto3 messages and does not manage connections. A Decoder looks up the OID of each column in a
// pgtype.Map and decodes the raw column bytes in the format the server reported.
package pgwire

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgproto3/v2"
	"github.com/rangekit/pgrange/pgtype"
)

// Decoder decodes range columns. Map is required. Tracer may be nil.
type Decoder struct {
	Map    *pgtype.Map
	Tracer DecodeTracer
}

// Decode decodes src, a value of the type with the given OID in the given format code. A nil src is SQL NULL and
// decodes to a nil Value.
func (d *Decoder) Decode(ctx context.Context, oid uint32, format int16, src []byte) (pgtype.Value, error) {
	typ, ok := d.Map.TypeForOID(oid)

	if d.Tracer != nil {
		data := TraceDecodeStartData{OID: oid, Format: format}
		if ok {
			data.TypeName = typ.Name
		}
		ctx = d.Tracer.TraceDecodeStart(ctx, data)
	}

	v, err := d.decode(typ, ok, oid, format, src)

	if d.Tracer != nil {
		end := TraceDecodeEndData{Err: err}
		if err == nil {
			if v == nil {
				end.Value = "NULL"
			} else {
				end.Value = v.String()
			}
		}
		d.Tracer.TraceDecodeEnd(ctx, end)
	}

	return v, err
}

func (d *Decoder) decode(typ *pgtype.Type, ok bool, oid uint32, format int16, src []byte) (pgtype.Value, error) {
	if !ok {
		return nil, &UnknownTypeError{OID: oid}
	}
	if src == nil {
		return nil, nil
	}
	return typ.Codec.DecodeValue(format, src)
}

// DecodeField decodes the value of the column described by fd.
func (d *Decoder) DecodeField(ctx context.Context, fd pgproto3.FieldDescription, src []byte) (pgtype.Value, error) {
	v, err := d.Decode(ctx, fd.DataTypeOID, fd.Format, src)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", fd.Name, err)
	}
	return v, nil
}

// DecodeRow decodes every column of row.
func (d *Decoder) DecodeRow(ctx context.Context, fields []pgproto3.FieldDescription, row *pgproto3.DataRow) ([]pgtype.Value, error) {
	if len(row.Values) != len(fields) {
		return nil, fmt.Errorf("row has %d values but %d fields were described", len(row.Values), len(fields))
	}

	values := make([]pgtype.Value, len(fields))
	for i := range fields {
		v, err := d.DecodeField(ctx, fields[i], row.Values[i])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Result is the decoded result of a simple query.
type Result struct {
	Fields     []pgproto3.FieldDescription
	Rows       [][]pgtype.Value
	CommandTag string
}

// Query sends sql as a simple query on fe and reads the result with ReadResult.
func (d *Decoder) Query(ctx context.Context, fe *pgproto3.Frontend, sql string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := fe.Send(&pgproto3.Query{String: sql}); err != nil {
		return nil, err
	}
	return d.ReadResult(ctx, fe)
}

// ReadResult reads the messages of one simple query result from fe up to and including ReadyForQuery. An
// ErrorResponse is returned as a *PgError after ReadyForQuery has been read so fe is left ready for the next query.
//
// ctx is checked between messages. It cannot interrupt a blocked read; set a deadline on the underlying connection
// for that.
func (d *Decoder) ReadResult(ctx context.Context, fe *pgproto3.Frontend) (*Result, error) {
	result := &Result{}
	var resultErr error

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg, err := fe.Receive()
		if err != nil {
			return nil, err
		}

		switch msg := msg.(type) {
		case *pgproto3.RowDescription:
			result.Fields = copyFieldDescriptions(msg.Fields)
		case *pgproto3.DataRow:
			if resultErr != nil {
				continue
			}
			row, err := d.DecodeRow(ctx, result.Fields, msg)
			if err != nil {
				resultErr = err
				continue
			}
			result.Rows = append(result.Rows, row)
		case *pgproto3.CommandComplete:
			result.CommandTag = string(msg.CommandTag)
		case *pgproto3.EmptyQueryResponse:
		case *pgproto3.ErrorResponse:
			resultErr = ErrorResponseToPgError(msg)
		case *pgproto3.ReadyForQuery:
			if resultErr != nil {
				return nil, resultErr
			}
			return result, nil
		}
	}
}

// Field descriptions are only valid until the next Receive.
func copyFieldDescriptions(fields []pgproto3.FieldDescription) []pgproto3.FieldDescription {
	out := make([]pgproto3.FieldDescription, len(fields))
	for i := range fields {
		out[i] = fields[i]
		out[i].Name = append([]byte(nil), fields[i].Name...)
	}
	return out
}

// NewBind builds a Bind message for statement with values as parameters, all in format. A nil Value is sent as SQL
// NULL. Results are requested in the same format.
func NewBind(statement string, format int16, values ...pgtype.Value) (*pgproto3.Bind, error) {
	bind := &pgproto3.Bind{
		PreparedStatement:    statement,
		ParameterFormatCodes: []int16{format},
		Parameters:           make([][]byte, len(values)),
		ResultFormatCodes:    []int16{format},
	}

	for i, v := range values {
		if v == nil {
			continue
		}
		buf, err := v.Encode(format, []byte{})
		if err != nil {
			return nil, fmt.Errorf("parameter $%d: %w", i+1, err)
		}
		bind.Parameters[i] = buf
	}

	return bind, nil
}

// IsUnknownType reports whether err was caused by an OID missing from the Map.
func IsUnknownType(err error) bool {
	var ute *UnknownTypeError
	return errors.As(err, &ute)
}
