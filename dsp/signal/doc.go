// Package signal provides the random sources that drive the noise families.
//
// A [Gaussian] hands out independent draws from a normal distribution with a
// caller-chosen mean and standard deviation. [Normal] is the production
// source; [Sequence] replays a fixed list of unit draws so tests can predict
// every output sample exactly.
package signal
