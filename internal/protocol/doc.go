// Package protocol executes structured query/mutation operations against a
// single remote HTTP endpoint.
//
// Wire format:
//   - Request: POST {"query": "<operation text>", "variables": {...}}
//     with Content-Type: application/json
//   - Response: {"data": <object|null>, "errors": [{"message", "path"}]|null}
//
// Every failure surfaces as a *Error whose Kind is one of:
//   - KindTransportError: no response obtained
//   - KindHTTPStatusError: status outside 200-299, whatever the body
//   - KindDecodeError: malformed envelope or data that does not fit T
//   - KindGraphQLError: non-empty errors list (wins over any data)
//   - KindEmptyDataError: neither data nor errors
//   - KindEncodeError: variables that cannot be written as JSON
//
// Variables are modelled by Value, a closed variant of null, bool, number,
// string, ordered list and ordered Object, so no arbitrary Go value can
// reach the encoder.
//
// Built on go-resty/resty with retries disabled: each call is one round
// trip, concurrent calls are independent, and nothing is cached.
//
// Example Usage:
//
//	op := protocol.NewOperation(loginMutation, protocol.NewObject(
//		protocol.F("input", protocol.ObjectValue(protocol.NewObject(
//			protocol.F("email", protocol.String(email)),
//			protocol.F("password", protocol.String(password)),
//		))),
//	))
//	out, err := protocol.Execute[LoginData](ctx, client, op)
//	if errors.Is(err, protocol.ErrGraphQL) { ... }
package protocol
