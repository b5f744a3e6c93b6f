/*
Package vault implements a per-receiver custodial vault.

Every receiver has exactly one vault. Its address is derived from the receiver
and the vault program identity and lies off the ed25519 curve, so nobody holds
a key for it. Anyone can deposit into a vault. Only the receiver can withdraw,
and a withdraw always leaves the rent exempt minimum in the vault.

The first deposit allocates the vault account and stores the receiver and the
derivation bump. The vault is never closed.
*/
package vault
